/*
Package token implements the state-management core of a standard
fungible-token contract: the account balance ledger, the storage-deposit
registration table, the fixed metadata record and the transfer protocol,
including the extended transfer that notifies a receiving contract and
refunds the unused part of the amount.

The contract owns its state exclusively. Every mutation enters through an
exported operation carrying a CallContext with the platform-authenticated
caller; the account being debited is always the caller. Total supply is
fixed at initialization and never changes afterwards: there are no mint or
burn operations.

# Contract events

Events are structured log lines with a stable schema,
"EVENT_JSON:" followed by a JSON envelope:

	standard: standard tag ("nep141" for token events, "nep145" for storage)
	version:  schema version ("1.0.0")
	event:    event name
	data:     array of event payloads

ft_mint, emitted once at initialization:

	owner_id: account credited with the initial supply
	amount:   base-10 string
	memo:     optional note

ft_transfer, emitted on every balance move:

	old_owner_id: debited account
	new_owner_id: credited account
	amount:       base-10 string
	memo:         optional note; refund legs of a transfer call carry
	              "refund", or "refund_truncated" when the receiver no
	              longer held the full refundable amount

storage_register and storage_unregister, registration set changes:

	account_id: affected account
*/
package token
