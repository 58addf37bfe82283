// Package env loads environment variable files and resolves {{name}}
// placeholders in request templates.
//
// Supported file formats: flat JSON maps, JSON record lists with an
// enabled flag (including Postman environment exports), YAML maps, and
// dotenv files. Interpolation is a single non-recursive pass; substituted
// values are never re-scanned.
package env
