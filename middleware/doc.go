// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /results/{id}", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status, duration_ms).

# Body Limits

LimitBody caps request bodies at MaxBodyBytes. Oversized form or JSON
bodies fail to parse and the handler answers 400.

# CORS

The JSON API under /api/ is wrapped with CORS so browser clients on other
origins can call it. Preflight OPTIONS requests are answered directly.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, result)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Checks X-Forwarded-For, then X-Real-IP, then RemoteAddr. The result is only
ever stored hashed, next to the vote.
*/
package middleware
