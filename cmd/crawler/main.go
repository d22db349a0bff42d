// Package main is the entry point of the trim catalog crawler.
package main

// go run ./cmd/crawler crawl --save
// go run ./cmd/crawler snapshot testdata/manifest.yaml
func main() {
	Execute()
}
