package manifest

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Coordinate is a parsed maven-style library coordinate.
type Coordinate struct {
	Group      string
	Artifact   string
	Version    string
	Classifier string
}

// ParseCoordinate splits group:artifact:version[:classifier]. An optional
// @extension suffix on the version is accepted and discarded; only jar
// artifacts reach the classpath.
func ParseCoordinate(name string) (Coordinate, error) {
	parts := strings.Split(name, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return Coordinate{}, fmt.Errorf("invalid library coordinate %q", name)
	}
	coord := Coordinate{
		Group:    parts[0],
		Artifact: parts[1],
		Version:  parts[2],
	}
	if len(parts) == 4 {
		coord.Classifier = parts[3]
	}
	if at := strings.IndexByte(coord.Version, '@'); at >= 0 {
		coord.Version = coord.Version[:at]
	}
	return coord, nil
}

// Key is the identity used for merge deduplication: group:artifact, plus the
// classifier when present. The version is deliberately excluded so that two
// versions of the same artifact collide and conflict resolution runs.
func (c Coordinate) Key() string {
	if c.Classifier != "" {
		return c.Group + ":" + c.Artifact + ":" + c.Classifier
	}
	return c.Group + ":" + c.Artifact
}

// Path derives the conventional repository-relative file path for the
// coordinate: group dots become directory separators, followed by
// artifact/version/artifact-version[-classifier].jar.
func (c Coordinate) Path() string {
	file := c.Artifact + "-" + c.Version
	if c.Classifier != "" {
		file += "-" + c.Classifier
	}
	file += ".jar"

	elems := strings.Split(c.Group, ".")
	elems = append(elems, c.Artifact, c.Version, file)
	return filepath.Join(elems...)
}

// key parses the library's coordinate and returns its dedup key. Libraries
// with unparseable coordinates fall back to the raw name so they still
// dedup against identical raw names.
func (l Library) key() string {
	coord, err := ParseCoordinate(l.Name)
	if err != nil {
		return l.Name
	}
	return coord.Key()
}
