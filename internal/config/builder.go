package config

import (
	"errors"
	"fmt"
)

// Builder layers overlays onto a base config. Errors are collected and
// reported together by Build.
type Builder struct {
	cfg     Config
	sources []string
	errs    []error
}

// NewBuilder starts from base.
func NewBuilder(base Config) *Builder {
	return &Builder{cfg: base.Clone(), sources: []string{"defaults"}}
}

// Apply layers o on top, labelling errors with source.
func (b *Builder) Apply(source string, o Overlay) *Builder {
	cfg, err := o.Apply(b.cfg)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("%s: %w", source, err))
		return b
	}
	b.cfg = cfg
	b.sources = append(b.sources, source)
	return b
}

// Mode layers a named mode. An empty name is a no-op.
func (b *Builder) Mode(name string) *Builder {
	if name == "" {
		return b
	}
	o, err := Mode(name)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	return b.Apply("mode "+name, o)
}

// File layers an overlay file. An empty path is a no-op.
func (b *Builder) File(path string) *Builder {
	if path == "" {
		return b
	}
	o, err := LoadFile(path)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	return b.Apply(path, o)
}

// Sources lists the layers applied so far, base first.
func (b *Builder) Sources() []string {
	return append([]string(nil), b.sources...)
}

// Build validates the layered config.
func (b *Builder) Build() (Config, error) {
	errs := append([]error(nil), b.errs...)
	if err := b.cfg.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return b.cfg.Clone(), nil
}
