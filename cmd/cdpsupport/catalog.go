package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/cdpsupport"
	"gopkg.in/yaml.v3"
)

// catalogFile is the YAML layout accepted by --platforms.
//
//	platforms:
//	  - id: segment
//	    seed_url: https://segment.com/docs/
//	    terms: [segment, twilio segment]
type catalogFile struct {
	Platforms []catalogEntry `yaml:"platforms"`
}

type catalogEntry struct {
	cdpsupport.Platform `yaml:",inline"`
	Terms               []string `yaml:"terms"`
}

// ReadCatalog merges the YAML catalog in r over base.
//
// Entries whose ID matches a platform in base override its non-empty fields.
// Entries with a new ID are appended. A platform listed with terms is
// identified by those terms, every other platform by its ID.
func ReadCatalog(r io.Reader, base cdpsupport.Catalog) (cdpsupport.Catalog, cdpsupport.PlatformRules, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return nil, nil, cdpsupport.Errorf(cdpsupport.EINVALID, "invalid platform catalog: %s", err)
	}

	catalog := make(cdpsupport.Catalog, 0, len(base)+len(file.Platforms))
	for _, p := range base {
		clone := *p
		catalog = append(catalog, &clone)
	}

	terms := make(map[cdpsupport.PlatformID][]string)
	for _, entry := range file.Platforms {
		if entry.ID == "" {
			return nil, nil, cdpsupport.Errorf(cdpsupport.EINVALID, "platform ID required")
		}
		if len(entry.Terms) > 0 {
			terms[entry.ID] = entry.Terms
		}

		p := catalog.Find(entry.ID)
		if p == nil {
			clone := entry.Platform
			catalog = append(catalog, &clone)
			continue
		}
		if entry.Name != "" {
			p.Name = entry.Name
		}
		if entry.SeedURL != "" {
			p.SeedURL = entry.SeedURL
		}
		if entry.Description != "" {
			p.Description = entry.Description
		}
	}

	if err := catalog.Validate(); err != nil {
		return nil, nil, err
	}

	rules := cdpsupport.RulesFor(catalog)
	for i := range rules {
		if t, ok := terms[rules[i].Platform]; ok {
			rules[i].Terms = t
		}
	}
	return catalog, rules, nil
}

// loadCatalog returns the default catalog, merged with the file at path
// when path is set.
func loadCatalog(path string) (cdpsupport.Catalog, cdpsupport.PlatformRules, error) {
	base := cdpsupport.DefaultCatalog()
	if path == "" {
		return base, cdpsupport.RulesFor(base), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open platform catalog: %w", err)
	}
	defer f.Close()

	return ReadCatalog(f, base)
}
