// Package overrides loads user-supplied corrections to package metadata.
//
// Overrides live in a TOML file (license-tool.toml by default) with a single
// [overrides] table. Keys are either a bare package name, which applies to
// every version, or "name-version", which applies to that version only:
//
//	[overrides]
//	"ring" = { license = "ISC AND MIT AND OpenSSL" }
//	"openssl-0.10.57" = { origin = "https://github.com/sfackler/rust-openssl" }
//
// A version-scoped entry always wins over a bare-name entry.
package overrides

import (
	"bytes"
	"net/url"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/matzehuels/licensetool/pkg/deps"
	"github.com/matzehuels/licensetool/pkg/errors"
)

// DefaultFilename is the config file looked up when none is given.
const DefaultFilename = "license-tool.toml"

// Override replaces metadata a package manager reports incorrectly or not at all.
type Override struct {
	Origin  *string `toml:"origin" json:"origin"`   // Replaces the repository URL
	License *string `toml:"license" json:"license"` // Replaces the declared license
}

// IsEmpty reports whether the override sets neither field.
func (o Override) IsEmpty() bool {
	return o.Origin == nil && o.License == nil
}

// Validate checks the fields that are set.
func (o Override) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Origin, validation.NilOrNotEmpty, validation.By(originURL)),
		validation.Field(&o.License, validation.NilOrNotEmpty, validation.By(notBlank)),
	)
}

func stringValue(value any) (string, bool) {
	v, isNil := validation.Indirect(value)
	if isNil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func originURL(value any) error {
	s, ok := stringValue(value)
	if !ok {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return validation.NewError("validation_origin_url", "must be an absolute URL")
	}
	switch u.Scheme {
	case "http", "https", "git":
		return nil
	}
	return validation.NewError("validation_origin_scheme", "must use http, https or git")
}

func notBlank(value any) error {
	if s, ok := stringValue(value); ok && strings.TrimSpace(s) == "" {
		return validation.NewError("validation_license_blank", "cannot be blank")
	}
	return nil
}

// Store is an immutable set of overrides keyed by package name or name-version.
type Store struct {
	entries map[string]Override
}

// Empty returns a store without overrides.
func Empty() *Store {
	return &Store{entries: map[string]Override{}}
}

type config struct {
	Overrides map[string]Override `toml:"overrides"`
}

// Load reads overrides from the TOML file at path. A missing file yields an
// empty store unless required is set.
func Load(path string, required bool) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return Empty(), nil
		}
		return nil, errors.Wrap(errors.ErrCodeConfig, err, "could not load %s", path)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, err, "could not parse %s", path)
	}
	return s, nil
}

// Parse decodes overrides from TOML. Unknown keys and invalid entries are
// rejected.
func Parse(data []byte) (*Store, error) {
	var cfg config
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, err, "malformed configuration")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}

	s := Empty()
	for key, o := range cfg.Overrides {
		if strings.TrimSpace(key) == "" {
			return nil, errors.New(errors.ErrCodeConfig, "override key cannot be empty")
		}
		if err := o.Validate(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfig, err, "invalid override %q", key)
		}
		s.entries[key] = o
	}
	return s, nil
}

// Lookup returns the override for id, preferring the version-scoped entry.
func (s *Store) Lookup(id deps.PackageID) (Override, bool) {
	if s == nil {
		return Override{}, false
	}
	if id.Version != "" {
		if o, ok := s.entries[id.String()]; ok {
			return o, true
		}
	}
	o, ok := s.entries[id.Name]
	return o, ok
}

// Len returns the number of entries.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// EmptyKeys returns the sorted keys of entries that set no field.
func (s *Store) EmptyKeys() []string {
	var keys []string
	for k, o := range s.entries {
		if o.IsEmpty() {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}
