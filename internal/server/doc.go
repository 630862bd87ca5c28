// Package server is the embeddable HTTP consumer of the registry. It exposes
// resolution, validation, and reload over a small JSON API so server-side
// integrations load exactly the guide set the CLI would: both consumers go
// through the same resolver and never reimplement ordering or filtering.
package server
