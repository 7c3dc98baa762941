// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides token generation and validation.

# Tokens

Three kinds of identifiers, none stored server-side in recoverable form:

  - Random IDs: GenerateID(n) returns n random bytes hex-encoded, used as
    primary keys for polls and votes.
  - Edit tokens: HMAC(pollID, salt), URL-safe base64. Deterministic, so
    validation is recomputation - no token table needed. The organiser
    presents it via the X-Edit-Token header for finalisation and nudges.
  - Share slugs: HMAC(pollID, salt) truncated and base62-encoded for
    short, copy-paste friendly URLs.

# Privacy

HashIP produces a salted, truncated one-way hash of a client IP, keeping
enough bits for abuse deduplication without storing the address itself.
*/
package auth
