// Package collection defines the request tree executed by a run.
//
// A collection is a named tree of folders and requests. Folders nest to
// arbitrary depth; document order is depth-first with a folder's own
// requests visited before its sub-folders.
//
// Two on-disk shapes are supported:
//   - the native colrun JSON shape (name, requests, folders)
//   - Postman Collection v2.1 exports, detected by the info.schema URL
package collection
