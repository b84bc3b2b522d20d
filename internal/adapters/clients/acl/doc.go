// Package acl holds the anti-corruption adapters for outbound services.
//
// Each adapter owns the wire DTOs of its service, keeps them unexported and
// translates them to domain types at the boundary. Failures are mapped once,
// by [MapHTTPError], so the application layer only ever sees domain errors:
//
//   - 404 → [domain.NotFoundError], or [domain.EmptyCollectionError] when
//     the body says EMPTY_COLLECTION
//   - 400/422 → [domain.ValidationError]
//   - 401/403/429/5xx, transport errors, open circuit → [domain.UnavailableError]
//
// Adapters embed [BaseAdapter] for request plumbing over [clients.Client].
package acl
