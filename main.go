// ubot is a campus knowledge chatbot: crawl the campus site, ingest the
// content into a local vector index, then answer questions from the
// terminal or over HTTP.
package main

import "github.com/campuslabs/ubot/internal/adapters/driving/cli"

func main() {
	cli.Execute()
}
