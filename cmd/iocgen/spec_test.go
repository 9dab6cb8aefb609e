package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// loadSpec()
// -----------------------------------------------------------------------------

// TestLoadSpec_YAML verifies loadSpec decodes a YAML file and fills default class names.
func TestLoadSpec_YAML(t *testing.T) {
	t.Parallel()

	p := writeTempFile(t, t.TempDir(), "ioc.yaml", string(minimalSpecYAML()))

	spec, err := loadSpec(p)
	require.NoError(t, err)

	assert.Equal(t, "svc", spec.Package)
	require.Len(t, spec.Classes, 2)
	assert.Equal(t, "StoreClass", spec.Classes[0].Name)
	assert.Equal(t, "ServiceClass", spec.Classes[1].Name)
	assert.Equal(t, []Dep{{Class: "NewStore"}, {Abstract: "service.name"}}, spec.Classes[1].Deps)
	require.Len(t, spec.Bindings, 2)
	assert.Equal(t, Binding{Abstract: "service.name", To: "instance", Target: `"billing"`}, spec.Bindings[0])
}

// TestLoadSpec_JSONIsAccepted verifies loadSpec decodes JSON, which is valid YAML.
func TestLoadSpec_JSONIsAccepted(t *testing.T) {
	t.Parallel()

	p := writeTempFile(t, t.TempDir(), "ioc.json", `{
  "package": "svc",
  "classes": [{ "constructor": "NewStore", "name": "TheStore" }]
}`)

	spec, err := loadSpec(p)
	require.NoError(t, err)
	require.Len(t, spec.Classes, 1)
	assert.Equal(t, "TheStore", spec.Classes[0].Name)
}

// TestLoadSpec_Errors verifies loadSpec rejects missing, empty, malformed and unknown-field files.
func TestLoadSpec_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	testCases := []struct {
		name    string
		path    string
		wantSub string
	}{
		{
			name:    "missing file",
			path:    "does-not-exist.yaml",
			wantSub: "no such file",
		},
		{
			name:    "empty file",
			path:    writeTempFile(t, dir, "empty.yaml", ""),
			wantSub: "is empty",
		},
		{
			name:    "unknown field",
			path:    writeTempFile(t, dir, "unknown.yaml", "package: svc\nimplType: Service\n"),
			wantSub: "implType",
		},
		{
			name:    "malformed",
			path:    writeTempFile(t, dir, "bad.yaml", "package: [svc\n"),
			wantSub: "yaml",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := loadSpec(tc.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantSub)
		})
	}
}

// TestClassVarName verifies classVarName derives class variable names from constructor names.
func TestClassVarName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "GreetingHandlerClass", classVarName("NewGreetingHandler"))
	assert.Equal(t, "newStoreClass", classVarName("newStore"))
	assert.Equal(t, "NewClass", classVarName("New"))
}

//
// -----------------------------------------------------------------------------
// validateSpec()
// -----------------------------------------------------------------------------

// TestValidateSpec_AllBranches verifies validateSpec rejects each kind of invalid file content.
func TestValidateSpec_AllBranches(t *testing.T) {
	t.Parallel()

	baseSpec := func() Spec {
		return Spec{
			Package: "svc",
			Classes: []Class{
				{Constructor: "NewStore", Name: "StoreClass"},
				{Constructor: "NewService", Name: "ServiceClass", Deps: []Dep{
					{Class: "NewStore"},
					{Abstract: "service.name"},
					{Type: "*example.com/svc.Logger"},
				}},
			},
			Bindings: []Binding{
				{Abstract: "service", To: "singletonClass", Target: "NewService"},
				{Abstract: "name", To: "instance", Target: `"billing"`},
			},
		}
	}

	testCases := []struct {
		name    string
		mutate  func(s *Spec)
		wantSub string
	}{
		{
			name:   "ok",
			mutate: func(s *Spec) {},
		},
		{
			name: "missing required fields collected",
			mutate: func(s *Spec) {
				s.Package = "  "
				s.Classes[0].Constructor = ""
				s.Bindings[1].Target = ""
			},
			wantSub: "[package classes[0].constructor bindings[1].target]",
		},
		{
			name:    "package not an identifier",
			mutate:  func(s *Spec) { s.Package = "my-pkg" },
			wantSub: `package "my-pkg" is not a valid identifier`,
		},
		{
			name:    "constructor not an identifier",
			mutate:  func(s *Spec) { s.Classes[0].Constructor = "pkg.NewStore" },
			wantSub: `constructor "pkg.NewStore"`,
		},
		{
			name:    "duplicate constructor",
			mutate:  func(s *Spec) { s.Classes[1].Constructor = "NewStore" },
			wantSub: "duplicate class constructor: NewStore",
		},
		{
			name:    "duplicate name",
			mutate:  func(s *Spec) { s.Classes[1].Name = "StoreClass" },
			wantSub: "duplicate class name: StoreClass",
		},
		{
			name:    "dep with no field set",
			mutate:  func(s *Spec) { s.Classes[1].Deps[1] = Dep{} },
			wantSub: "NewService dependency #1: exactly one of class/abstract/type",
		},
		{
			name:    "dep with two fields set",
			mutate:  func(s *Spec) { s.Classes[1].Deps[1].Type = "string" },
			wantSub: "exactly one of class/abstract/type",
		},
		{
			name:    "dep on unlisted class",
			mutate:  func(s *Spec) { s.Classes[1].Deps[0].Class = "NewCache" },
			wantSub: "class NewCache is not a listed class",
		},
		{
			name:    "unknown binding kind",
			mutate:  func(s *Spec) { s.Bindings[0].To = "scoped" },
			wantSub: `unknown binding kind "scoped"`,
		},
		{
			name:    "class target not listed",
			mutate:  func(s *Spec) { s.Bindings[0].Target = "NewCache" },
			wantSub: "singletonClass target NewCache is not a listed class",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			spec := baseSpec()
			tc.mutate(&spec)

			err := validateSpec(&spec)
			if tc.wantSub == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantSub)
		})
	}
}
