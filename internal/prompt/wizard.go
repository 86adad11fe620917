package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/fourchimps/crudgen/internal/crud"
	"github.com/fourchimps/crudgen/internal/types"
)

// Wizard asks for the parameters of a CRUD generation.
type Wizard struct {
	driver      PromptDriver
	checkEntity func(types.EntityRef) error
	checkModule func(string) error
}

// WizardOption configures a Wizard.
type WizardOption func(*Wizard)

// WithEntityCheck rejects entity answers failing fn, e.g. unknown entities.
func WithEntityCheck(fn func(types.EntityRef) error) WizardOption {
	return func(w *Wizard) {
		w.checkEntity = fn
	}
}

// WithModuleCheck rejects target module answers failing fn.
func WithModuleCheck(fn func(string) error) WizardOption {
	return func(w *Wizard) {
		w.checkModule = fn
	}
}

// NewWizard returns a Wizard asking through driver.
func NewWizard(driver PromptDriver, opts ...WizardOption) *Wizard {
	w := &Wizard{driver: driver}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run asks every question, seeding the answers with defaults, and returns
// the completed request.
func (w *Wizard) Run(ctx context.Context, defaults types.GenerationRequest) (types.GenerationRequest, error) {
	req := defaults

	if err := w.info(ctx,
		"Welcome to the ent CRUD generator",
		"",
		"This command helps you generate CRUD controllers and templates.",
		"",
		"First, you need to give the entity for which you want to generate a CRUD.",
		"You must use the shortcut notation like Blog:Post.",
		"",
	); err != nil {
		return req, err
	}
	entity, err := w.driver.Input(ctx, InputConfig{
		Message:   "The Entity shortcut name",
		Default:   req.Entity,
		Validator: w.validateEntity,
	})
	if err != nil {
		return req, err
	}
	if err := w.validateEntity(entity); err != nil {
		return req, err
	}
	ref, _ := types.ParseEntityRef(entity)
	req.Entity = ref.String()

	if err := w.info(ctx,
		"",
		"The CRUD generator creates CRUD actions in a host or target module.",
		"",
	); err != nil {
		return req, err
	}
	target, err := w.driver.Input(ctx, InputConfig{
		Message:   "The Target module",
		Default:   req.Target,
		Validator: w.validateModule,
	})
	if err != nil {
		return req, err
	}
	if err := w.validateModule(target); err != nil {
		return req, err
	}
	req.Target = strings.TrimSpace(target)

	if err := w.info(ctx,
		"",
		"By default, the generator creates two actions: list and show.",
		`You can also ask it to generate "write" actions: new, update, and delete.`,
		"",
	); err != nil {
		return req, err
	}
	if req.WithWrite, err = w.driver.Confirm(ctx, ConfirmConfig{
		Message: `Do you want to generate the "write" actions`,
		Default: req.WithWrite,
	}); err != nil {
		return req, err
	}

	if err := w.info(ctx,
		"",
		"Determine the format to use for the generated CRUD.",
		"",
	); err != nil {
		return req, err
	}
	options := make([]string, len(types.Formats))
	def := 0
	for i, f := range types.Formats {
		options[i] = f.String()
		if strings.EqualFold(f.String(), req.Format) {
			def = i
		}
	}
	idx, err := w.driver.Select(ctx, SelectConfig{
		Message:      "Configuration format",
		Options:      options,
		DefaultIndex: def,
	})
	if err != nil {
		return req, err
	}
	if idx < 0 || idx >= len(options) {
		return req, &types.InvalidInputError{Field: "format", Value: fmt.Sprint(idx), Reason: "no such option"}
	}
	req.Format = options[idx]

	if err := w.info(ctx,
		"",
		`Determine the routes prefix (all the routes will be "mounted" under this`,
		"prefix: /prefix/, /prefix/new, ...).",
		"",
	); err != nil {
		return req, err
	}
	prefix := req.RoutePrefix
	if prefix == "" {
		prefix = "/" + crud.DefaultRoutePrefix(ref)
	}
	if req.RoutePrefix, err = w.driver.Input(ctx, InputConfig{
		Message: "Routes prefix",
		Default: prefix,
	}); err != nil {
		return req, err
	}

	if err := w.info(ctx,
		"",
		"Summary before generation",
		"",
		fmt.Sprintf("You are going to generate a CRUD controller for %q", req.Entity),
		fmt.Sprintf("using the %q format", req.Format),
		fmt.Sprintf("in the %q module.", req.Target),
		"",
	); err != nil {
		return req, err
	}
	return req, nil
}

// Confirm asks for the final go-ahead.
func (w *Wizard) Confirm(ctx context.Context) (bool, error) {
	return w.driver.Confirm(ctx, ConfirmConfig{
		Message: "Do you confirm generation",
		Default: true,
	})
}

func (w *Wizard) validateEntity(s string) error {
	ref, err := types.ParseEntityRef(s)
	if err != nil {
		return err
	}
	if w.checkEntity != nil {
		return w.checkEntity(ref)
	}
	return nil
}

func (w *Wizard) validateModule(s string) error {
	s = strings.TrimSpace(s)
	if !types.ValidIdentifier(s) {
		return &types.InvalidInputError{Field: "target", Value: s, Reason: "the module name must be a valid identifier"}
	}
	if w.checkModule != nil {
		return w.checkModule(s)
	}
	return nil
}

func (w *Wizard) info(ctx context.Context, lines ...string) error {
	return w.driver.Info(ctx, strings.Join(lines, "\n"))
}
