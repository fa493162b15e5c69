// Package scraper fetches the dirt-grade race schedule and extracts race records
// from its HTML.
//
// Fetching accepts an http(s) URL or a local file path and always hands the
// extractor UTF-8 text, detecting the page encoding from the Content-Type header
// or the document's meta tags. Extraction walks every li.race element, maps its
// class token through the grade table, parses the "M/D（曜）" date against the
// schedule year and normalizes the venue name. Races at central-authority venues
// are filtered out.
package scraper
