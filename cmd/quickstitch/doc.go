// Package main hosts the quickstitch CLI.
//
// The cobra command tree loads configuration once, applies any flags the
// user set explicitly, and hands the result to the stitcher pipeline:
//
//	quickstitch stitch --dir ./chapter-12 -o ./pages --format png
//	quickstitch plan ./01.webp ./02.webp --max-height 4000
//	quickstitch serve
//
// Logs go to stderr. stdout carries reports, and the MCP protocol when
// running serve.
package main
