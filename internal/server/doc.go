// Package server implements the MCP (Model Context Protocol) server for
// stitching and splitting image strips.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - stitch_discover: List a directory's images in stitching order
//   - stitch_plan: Load images, find splitpoints, cache the result
//   - stitch_export: Write a cached plan's pages to disk
//   - stitch_evict: Drop a cached plan
//
// Arguments a client leaves out fall back to the loaded configuration.
//
// # Plans
//
// stitch_plan keeps the stitched strip in memory under a random plan id so
// that stitch_export can write it in several formats without reloading the
// sources. Plans live until evicted or the process exits.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with code
// -32000. When an export fails on some pages only, the error data lists the
// failed pages and the files that were written.
package server
