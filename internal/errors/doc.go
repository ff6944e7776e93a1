// Package errors provides the structured error handling used across rogue-api.
//
// It provides:
//   - Structured errors with codes, messages, and metadata
//   - Error context preservation through wrapping
//   - Validation error helpers for orchestrator configs and inputs
//   - Type-safe error checking by code
//   - HTTP status mapping for the server surface
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.NotFound("recipe not found")
//	err := errors.InvalidArgumentf("invalid slot: %s", slot)
//
// Adding metadata:
//
//	err := errors.NotFound("template not found").
//	    WithMeta("template_id", templateID)
//
// Wrapping errors:
//
//	if err := repo.Get(ctx, id); err != nil {
//	    return errors.Wrap(err, "failed to load saved game")
//	}
//
// Wrap preserves the code of an existing *Error, so a repository's
// NotFound survives orchestrator-level wrapping and can still be
// branched on at the handler.
//
// # Error Checking
//
//	if errors.IsNotFound(err) {
//	    // treat as an absent resource, not a failure
//	}
//
//	code := errors.GetCode(err)
//	message := errors.GetMessage(err)
//
// # Validation
//
// Orchestrator Config.Validate methods use the builder:
//
//	vb := errors.NewValidationBuilder()
//	if c.EventBus == nil {
//	    vb.RequiredField("EventBus")
//	}
//	return vb.Build()
//
// # Layer Guidelines
//
// Repository layer: return NotFound for absent ids, wrap storage errors
// with context. Orchestrator layer: InvalidArgument for malformed inputs,
// FailedPrecondition for operations whose requirements are not met.
// Handler layer: map codes to transport status via Code.HTTPStatus and
// send GetMessage as the user-facing text.
//
// Game-rule outcomes (cannot craft, cannot cast, blocked move) are not
// errors at all: they are reported through result fields on operation
// outputs so the turn pipeline's control flow stays linear.
package errors
