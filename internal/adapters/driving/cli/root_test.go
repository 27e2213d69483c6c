package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCmd_RegistersCommands(t *testing.T) {
	want := []string{"ask", "chat", "crawl", "ingest", "serve", "sources", "version"}

	registered := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}

	for _, name := range want {
		assert.True(t, registered[name], "command %q not registered", name)
	}
}

func TestSeedHosts(t *testing.T) {
	hosts := seedHosts([]string{
		"https://www.example.edu/",
		"https://www.example.edu/admissions",
		"https://catalog.example.edu/courses",
		"not a url",
	})
	assert.Equal(t, []string{"www.example.edu", "catalog.example.edu"}, hosts)
}
