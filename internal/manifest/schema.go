// Package manifest loads, validates, and merges version descriptors: the
// JSON documents that describe the main class, libraries, and launch
// arguments of one game version, plus the single-parent inheritance used by
// mod-loader overlays.
package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/yanquisalexander/launchcore/internal/rules"
)

// Descriptor is the typed form of a version manifest. All fields are
// optional on the wire; validation of the merged result happens at launch
// time, not parse time.
type Descriptor struct {
	ID           string     `json:"id,omitempty"`
	MainClass    string     `json:"mainClass,omitempty"`
	InheritsFrom string     `json:"inheritsFrom,omitempty"`
	Type         string     `json:"type,omitempty"`
	Libraries    []Library  `json:"libraries,omitempty"`
	Arguments    *Arguments `json:"arguments,omitempty"`

	// MinecraftArguments is the pre-1.13 single-string game argument format.
	// Descriptors carry either this or Arguments, never meaningfully both.
	MinecraftArguments string `json:"minecraftArguments,omitempty"`

	AssetIndex *AssetIndex `json:"assetIndex,omitempty"`
	// Assets is the legacy flat asset-index id field.
	Assets string `json:"assets,omitempty"`
}

// AssetIndexID returns the asset index id, preferring the structured field
// over the legacy flat one.
func (d *Descriptor) AssetIndexID() string {
	if d.AssetIndex != nil && d.AssetIndex.ID != "" {
		return d.AssetIndex.ID
	}
	return d.Assets
}

// AssetIndex identifies the asset index a version uses.
type AssetIndex struct {
	ID string `json:"id"`
}

// Arguments holds the structured (post-1.13) argument lists.
type Arguments struct {
	JVM  []Token `json:"jvm,omitempty"`
	Game []Token `json:"game,omitempty"`
}

// Token is one entry of a structured argument list: either a literal string
// or a conditional form carrying rules and one or more values. The two
// shapes are distinguished at parse time rather than sniffed later.
type Token struct {
	Literal string
	Rules   []rules.Rule
	Values  []string
}

// IsLiteral reports whether the token is the plain-string form.
func (t Token) IsLiteral() bool {
	return t.Rules == nil && t.Values == nil
}

// conditionalToken is the wire shape of the object form of a Token.
type conditionalToken struct {
	Rules []rules.Rule    `json:"rules,omitempty"`
	Value json.RawMessage `json:"value"`
}

// UnmarshalJSON decodes either token shape. A bare string becomes a literal;
// an object must carry a "value" that is a string or an array of strings.
func (t *Token) UnmarshalJSON(data []byte) error {
	var literal string
	if err := json.Unmarshal(data, &literal); err == nil {
		*t = Token{Literal: literal}
		return nil
	}

	var cond conditionalToken
	if err := json.Unmarshal(data, &cond); err != nil {
		return fmt.Errorf("argument token is neither a string nor a conditional object: %w", err)
	}

	var single string
	if err := json.Unmarshal(cond.Value, &single); err == nil {
		*t = Token{Rules: cond.Rules, Values: []string{single}}
		return nil
	}
	var many []string
	if err := json.Unmarshal(cond.Value, &many); err != nil {
		return fmt.Errorf("conditional argument value is neither a string nor a string array: %w", err)
	}
	*t = Token{Rules: cond.Rules, Values: many}
	return nil
}

// MarshalJSON re-encodes the token in its original wire shape.
func (t Token) MarshalJSON() ([]byte, error) {
	if t.IsLiteral() {
		return json.Marshal(t.Literal)
	}
	value, err := json.Marshal(t.Values)
	if err != nil {
		return nil, err
	}
	return json.Marshal(conditionalToken{Rules: t.Rules, Value: value})
}

// Library is one entry of a descriptor's library list.
type Library struct {
	// Name is the maven-style coordinate: group:artifact:version[:classifier].
	Name      string            `json:"name"`
	Downloads *LibraryDownloads `json:"downloads,omitempty"`
	// Natives maps a descriptor OS name to the classifier id holding that
	// platform's native binaries. Values may contain the ${arch} template.
	Natives map[string]string `json:"natives,omitempty"`
	Rules   []rules.Rule      `json:"rules,omitempty"`
}

// LibraryDownloads carries the explicit artifact locations, when present.
type LibraryDownloads struct {
	Artifact    *Artifact           `json:"artifact,omitempty"`
	Classifiers map[string]Artifact `json:"classifiers,omitempty"`
}

// Artifact is one downloadable file reference. Only Path is consumed here;
// URL belongs to the download collaborator.
type Artifact struct {
	Path string `json:"path"`
	URL  string `json:"url,omitempty"`
}
