package sentence

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ieee0824/pronounce-go/score"
	"gopkg.in/yaml.v3"
)

// LoadTSV reads a catalog from tab-separated text. The first non-comment
// line is a header naming the columns; "sentence" and "path" are required,
// "translation" and "difficulty" are optional. Rows without a sentence or
// path are skipped. Relative audio paths are resolved against baseDir.
// Missing difficulties are derived from sentence length.
func LoadTSV(r io.Reader, baseDir string) (*Catalog, error) {
	c := New(nil)
	scanner := bufio.NewScanner(r)
	lineNum := 0
	var cols map[string]int

	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")

		if cols == nil {
			cols = make(map[string]int, len(fields))
			for i, f := range fields {
				cols[strings.ToLower(strings.TrimSpace(f))] = i
			}
			for _, req := range []string{"sentence", "path"} {
				if _, ok := cols[req]; !ok {
					return nil, fmt.Errorf("line %d: header has no %q column", lineNum, req)
				}
			}
			continue
		}

		get := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(fields) {
				return ""
			}
			return strings.TrimSpace(fields[i])
		}

		text, path := get("sentence"), get("path")
		if text == "" || path == "" {
			continue
		}
		if !filepath.IsAbs(path) && !strings.Contains(path, "://") && baseDir != "" {
			path = filepath.Join(baseDir, path)
		}

		e := Entry{Sentence: text, Translation: get("translation"), AudioPath: path}
		if d := get("difficulty"); d != "" {
			parsed, err := score.ParseDifficulty(d)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			e.Difficulty = parsed
		}
		c.Add(e)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if cols == nil {
		return nil, fmt.Errorf("missing header line")
	}
	return c, nil
}

type yamlCatalog struct {
	Sentences []Entry `yaml:"sentences"`
}

// LoadYAML reads a catalog from YAML of the form:
//
//	sentences:
//	  - sentence: Selamat pagi
//	    translation: Good morning
//	    difficulty: easy
//	    audio_path: audio/selamat_pagi.wav
func LoadYAML(r io.Reader) (*Catalog, error) {
	var doc yamlCatalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	for i, e := range doc.Sentences {
		if strings.TrimSpace(e.Sentence) == "" {
			return nil, fmt.Errorf("sentences[%d]: sentence is required", i)
		}
		if e.Difficulty != "" && !e.Difficulty.Valid() {
			return nil, fmt.Errorf("sentences[%d]: unknown difficulty %q", i, e.Difficulty)
		}
	}
	return New(doc.Sentences), nil
}

// LoadFile reads a catalog from path, choosing the format by extension
// (.yaml/.yml or .tsv). Relative audio paths in TSV files are resolved
// against the file's directory.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		c, err := LoadYAML(f)
		if err != nil {
			return nil, fmt.Errorf("load %q: %w", path, err)
		}
		return c, nil
	default:
		c, err := LoadTSV(f, filepath.Dir(path))
		if err != nil {
			return nil, fmt.Errorf("load %q: %w", path, err)
		}
		return c, nil
	}
}
