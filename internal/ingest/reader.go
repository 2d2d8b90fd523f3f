package ingest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/qepting91/listen-pipeline/internal/domain"
)

// Resource names end up in URL paths and file names
var resourceNameRegex = regexp.MustCompile(`^[a-z0-9_]{1,64}$`)

// LoadResources reads a one-column CSV (with header) of resource names.
// Order is preserved, duplicates are dropped.
func LoadResources(path string) ([]domain.Resource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadResources(f)
}

func ReadResources(in io.Reader) ([]domain.Resource, error) {
	r := csv.NewReader(stripBOM(in))
	r.FieldsPerRecord = -1

	var resources []domain.Resource
	seen := make(map[string]bool)
	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if line == 1 || len(record) == 0 {
			continue // Skip header
		}

		name := strings.ToLower(strings.TrimSpace(record[0]))
		if name == "" {
			continue
		}
		if !resourceNameRegex.MatchString(name) {
			return nil, fmt.Errorf("line %d: invalid resource name %q", line, name)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		resources = append(resources, domain.Resource(name))
	}
	if len(resources) == 0 {
		return nil, fmt.Errorf("no resources in file")
	}
	return resources, nil
}

func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	rdr, _, err := br.ReadRune()
	if err != nil {
		return br
	}
	if rdr != '\uFEFF' {
		br.UnreadRune()
	}
	return br
}
