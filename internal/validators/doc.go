// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

// Package validators holds schema validators shared by the provider's resources.
package validators
