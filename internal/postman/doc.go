// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

// Package postman is a small client for the Postman REST API.
//
// Every call goes through an Executor that retries 429, 5xx, network and
// timeout failures with exponential backoff and honors Retry-After. Failures
// surface as *APIError, whose Kind and Hint tell the caller what went wrong
// and what to do about it.
//
// Environment variables are tagged secret or default by key name
// (see IsSecretKey). A tag, once stored, is kept on later partial updates
// unless the caller passes an explicit type.
package postman
