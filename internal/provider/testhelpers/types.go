// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package testhelpers

// FakeNetErr is a net.Error stand-in for transport failure paths.
type FakeNetErr struct{ timeout bool }

func (e FakeNetErr) Error() string   { return "fake timeout" }
func (e FakeNetErr) Timeout() bool   { return e.timeout }
func (e FakeNetErr) Temporary() bool { return true }

// NewFakeNetErr constructs a FakeNetErr with the provided timeout flag.
func NewFakeNetErr(timeout bool) FakeNetErr { return FakeNetErr{timeout: timeout} }

// VariableTmplCfg is one entry of an environment's variables block.
type VariableTmplCfg struct {
	Key   string
	Value string
	// Type and Enabled are omitted from the config when empty/nil.
	Type    string
	Enabled *bool
}

type EnvironmentTmplCfg struct {
	Name        string
	WorkspaceID string
	Variables   []VariableTmplCfg
}

type EnvironmentVariableTmplCfg struct {
	EnvironmentName string
	Key             string
	Value           string
	Type            string
	Enabled         *bool
}

type CollectionTmplCfg struct {
	Name        string
	Description string
	WorkspaceID string
}

// DataListCfg renders a listing data source next to the resources it should find.
type DataListCfg struct {
	Resources   []string
	DataName    string
	WorkspaceID string
	Names       []string
}
