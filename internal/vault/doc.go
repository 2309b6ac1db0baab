// Package vault is the HTTP client for the gold platform's wallet API.
//
// The client is read-only. It fetches two resources on every refresh:
//
//   - GET /api/wallet/summary       wallet balances, spot price, vault bars, BNSL plans
//   - GET /api/wallet/transactions  most recent ledger entries (?limit=N)
//
// Each request carries a fresh X-Request-ID so failures reported in the
// dashboard can be matched with server logs. Responses with status >= 400
// are returned as *APIError; transport failures are wrapped with
// "execute request" and malformed bodies with "decode response".
//
// Retry and backoff are not handled here. The poller in internal/app owns
// that policy.
package vault
