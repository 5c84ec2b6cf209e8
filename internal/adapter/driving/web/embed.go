package web

import "embed"

// StaticFS holds the embedded static assets (stylesheet, favicon).
//
//go:embed static/*
var StaticFS embed.FS

// AboutMarkdown is the biographical text shown in the about section.
//
//go:embed content/about.md
var AboutMarkdown string
