// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package notify delivers "maybe" nudges to voters.

Sender is the delivery interface; handlers depend on it, not on a
transport. LogSender is the built-in implementation and writes each
nudge to the structured log.

The at-most-once guarantee lives in the handler, not here: a claim row
is inserted in the same transaction that decides to send, so a Sender
never sees the same (poll, date) twice.
*/
package notify
