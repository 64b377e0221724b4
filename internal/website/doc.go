// Package website renders the catalog as a single static HTML page.
//
// The page comes from an HTML template holding two placeholders,
// __TEMPLATE_TITLE__ and __TEMPLATE_MOVIE_GRID__, plus a stylesheet that is
// inlined before </head>. Both files are embedded; Options.TemplateDir may
// point at a directory with replacements. Every value taken from the catalog
// is HTML-escaped.
package website
