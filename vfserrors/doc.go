// Package vfserrors provides structured error handling for the vfs module.
//
// This package extends Go's standard error handling with error codes, classification
// (retryable vs permanent), context metadata, and JSON serialization. It maintains
// full compatibility with the standard library errors package (errors.Is, errors.As,
// errors.Unwrap).
//
// # Features
//
//   - Structured error codes matching the filesystem contract's error taxonomy
//   - Error classification for retry logic around the object-store backend
//   - Context metadata attachment for debugging (path, bucket, key, ...)
//   - Error wrapping that preserves the error chain
//   - JSON serialization for the HTTP surface's error responses
//
// # Design Principles
//
//   - Standard library compatibility (errors.Is, errors.As, errors.Unwrap)
//   - Immutability (errors are immutable once created)
//   - Type safety (strong types for codes and classifications)
//   - Simplicity (minimal API surface, easy to use correctly)
//
// # Quick Start
//
// Creating errors:
//
//	// Simple error
//	err := vfserrors.New(vfserrors.CodeNotFound, "file not found")
//
//	// Formatted error
//	err := vfserrors.Newf(vfserrors.CodePathInvalid, "path must be absolute: %q", raw)
//
// Wrapping errors:
//
//	data, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
//	if err != nil {
//	    return vfserrors.Wrap(err, vfserrors.CodeNetwork, "failed to read object")
//	}
//
// Adding context:
//
//	err := vfserrors.New(vfserrors.CodeForbidden, "path escapes backend root")
//	err = vfserrors.WithContext(err, "path", p.String())
//
// Retry logic:
//
//	if vfserrors.IsRetryable(err) {
//	    time.Sleep(backoff)
//	    return retry(operation)
//	}
//
// JSON serialization:
//
//	func handleError(w http.ResponseWriter, err error) {
//	    response := vfserrors.ToJSON(err)
//	    w.Header().Set("Content-Type", "application/json")
//	    w.WriteHeader(httpStatusForCode(vfserrors.GetCode(err)))
//	    json.NewEncoder(w).Encode(response)
//	}
//
// # Error Codes
//
// The codes mirror the filesystem contract's error taxonomy:
//
//   - Path errors: CodePathEmpty, CodePathInvalid, CodePathInvalidChars, CodePathDottedSegments
//   - Existence errors: CodeNotFound, CodeAlreadyExists
//   - Capability errors: CodeReadOnly, CodeForbidden, CodeNotSupported
//   - Infrastructure errors: CodeNetwork, CodeTimeout
//   - System errors: CodeInternal, CodeUnknown
//
// Each error code has a default classification (retryable or permanent) that can
// be overridden with WithClassification when needed.
//
// # Error Classification
//
// Errors are classified as either retryable or permanent:
//
//   - Retryable: transport-level failures against the object-store backend (network, timeout)
//   - Permanent: path validation failures, missing entries, capability violations
//
// Use vfserrors.IsRetryable(err) to make retry decisions. The classification is
// preserved when wrapping errors and can be overridden with WithClassification.
//
// # Standard Library Compatibility
//
// PlatformError implements the error interface and works seamlessly with standard
// library error functions:
//
//	var platformErr vfserrors.PlatformError
//	if errors.As(err, &platformErr) {
//	    code := platformErr.Code()
//	}
//
// # Best Practices
//
//   - Wrap backend errors with context: vfserrors.Wrap(err, code, message)
//   - Use specific error codes, not CodeUnknown
//   - Use IsRetryable for retry decisions, not specific codes
//   - Use ToJSON for HTTP responses rather than exposing the raw error chain
package vfserrors
