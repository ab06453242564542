package service

import (
	"fmt"
	"maps"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/fulldump/apitest"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Save writes a markdown example of the request and its response into
// API_EXAMPLES_PATH, if defined.
func Save(response *apitest.Response, title, description string) {

	examplesPath := os.Getenv("API_EXAMPLES_PATH")
	if examplesPath == "" {
		return
	}

	request := response.Request

	query := request.URL.RawQuery
	if query != "" {
		query = "?" + query
	}

	s := &strings.Builder{}

	fmt.Fprintf(s, "# %s\n", title)
	fmt.Fprintf(s, "%s\n", cropTabs(description))

	s.WriteString("Curl example:\n\n```sh\n")

	method := ""
	if request.Method != "GET" {
		method = "-X " + request.Method + " "
	}
	fmt.Fprintf(s, "curl %s\"https://example.com%s%s\"", method, request.URL.Path, query)
	for k, l := range request.Header {
		for _, v := range l {
			fmt.Fprintf(s, " \\\n-H \"%s: %s\"", k, v)
		}
	}
	requestBody := formatJSON(response.BodyRequestString())
	if requestBody != "" {
		fmt.Fprintf(s, " \\\n-d '%s'", requestBody)
	}
	s.WriteString("\n```\n\n\n")

	s.WriteString("HTTP request/response example:\n\n```http\n")

	fmt.Fprintf(s, "%s %s%s %s\n", request.Method, request.URL.Path, query, request.Proto)
	s.WriteString("Host: example.com\n")
	for k, l := range request.Header {
		for _, v := range l {
			fmt.Fprintf(s, "%s: %s\n", k, v)
		}
	}
	fmt.Fprintf(s, "\n%s\n\n", requestBody)

	fmt.Fprintf(s, "%s %s\n", response.Proto, response.Status)
	for _, k := range slices.Sorted(maps.Keys(response.Header)) {
		if k == "Date" {
			s.WriteString("Date: Mon, 15 Aug 2022 02:08:13 GMT\n")
			continue
		}
		for _, v := range response.Header[k] {
			fmt.Fprintf(s, "%s: %s\n", k, v)
		}
	}
	fmt.Fprintf(s, "\n%s\n", formatJSON(response.BodyString()))
	s.WriteString("```\n\n\n")

	filename := strings.ReplaceAll(strings.ToLower(title), " ", "_") + ".md"
	p := path.Join(examplesPath, path.Clean(filename))
	fmt.Println("Saving", p)
	err := os.WriteFile(p, []byte(s.String()), 0666)
	if err != nil {
		fmt.Println("Saving err:", err)
	}
}

// formatJSON indents body, NDJSON and other payloads are left untouched.
func formatJSON(body string) string {

	var i interface{}
	err := json.Unmarshal([]byte(body), &i)
	if err != nil {
		return body
	}

	bytes, err := json.Marshal(i, jsontext.WithIndent("    "), json.Deterministic(true))
	if err != nil {
		return body
	}

	return string(bytes)
}

// cropTabs removes the common tab indentation of a raw string literal.
func cropTabs(d string) string {

	lines := strings.Split(d, "\n")

	first := 0
	last := len(lines)
	if len(lines) > 2 {
		first++
		last--
	}

	minTabs := -1
	for _, line := range lines[first:last] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		c := len(line) - len(strings.TrimLeft(line, "\t"))
		if minTabs < 0 || c < minTabs {
			minTabs = c
		}
	}
	if minTabs < 0 {
		minTabs = 0
	}

	prefix := strings.Repeat("\t", minTabs)
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}

	return strings.Join(lines, "\n")
}
