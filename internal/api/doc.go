// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the single request/response exchange with the
// prompt backend.
//
// The backend exposes one endpoint, POST /api, which takes the API key, the
// model identifier and the user's prompt as a JSON body and answers with
// {"success": bool, "message": string}.
//
// # Key Types
//
//   - Client: HTTP client for the backend endpoint
//   - Answer: Parsed backend response
//   - Asker: The interface the chat widget depends on
//
// # Usage
//
//	client := api.NewClient("http://localhost:3000")
//	answer := client.Ask(ctx, apiKey, model, "hello")
//	if answer != nil && answer.Success {
//	    fmt.Println(answer.Message)
//	}
//
// # Failure Handling
//
// Ask never returns an error. Transport failures, non-2xx statuses and
// malformed bodies are logged to the developer log and reported to the
// caller as a nil Answer. The API key and request body are never logged.
package api
