package timeline

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File is the on-disk representation of a timeline
type File struct {
	Version string      `yaml:"version"`
	Video   string      `yaml:"video,omitempty"`
	Scenes  []FileScene `yaml:"scenes"`
}

// FileScene is a scene entry of a timeline file. A missing duration keeps
// the declared one, so an entry may tune only params.
type FileScene struct {
	Name     string             `yaml:"name"`
	Duration *float64           `yaml:"duration,omitempty"`
	Mode     string             `yaml:"mode,omitempty"`
	Kind     string             `yaml:"kind,omitempty"`
	Params   map[string]float64 `yaml:"params,omitempty"`
}

// WriteTimeline writes a timeline to a YAML file
func WriteTimeline(tl *Timeline, video string, path string) error {
	f := File{
		Version: "1.0",
		Video:   video,
	}
	for _, sc := range tl.Scenes() {
		d := sc.Duration
		f.Scenes = append(f.Scenes, FileScene{
			Name:     sc.Name,
			Duration: &d,
			Mode:     sc.Mode,
			Kind:     sc.Kind,
			Params:   sc.Params,
		})
	}

	data, err := yaml.Marshal(&f)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return os.WriteFile(path, data, 0644)
}

// ReadTimeline reads a timeline file from YAML
func ReadTimeline(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &f, nil
}

// Override returns a copy of base where same-named scenes take the duration
// (when given) and params from the file. Scenes unknown to base are rejected: the
// explainer's renderer would have nothing to draw for them.
func Override(base *Timeline, f *File) (*Timeline, error) {
	if f == nil {
		return base, nil
	}

	scenes := base.Scenes()
	index := make(map[string]int, len(scenes))
	for i, s := range scenes {
		index[s.Name] = i
	}

	for _, o := range f.Scenes {
		i, ok := index[o.Name]
		if !ok {
			return nil, fmt.Errorf("unknown scene %q", o.Name)
		}
		if o.Duration != nil {
			scenes[i].Duration = *o.Duration
		}
		if len(o.Params) > 0 {
			params := make(map[string]float64, len(scenes[i].Params)+len(o.Params))
			for k, v := range scenes[i].Params {
				params[k] = v
			}
			for k, v := range o.Params {
				params[k] = v
			}
			scenes[i].Params = params
		}
	}

	return New(scenes...)
}
