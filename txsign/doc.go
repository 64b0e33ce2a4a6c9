/*
Package txsign signs and verifies the inputs of bitcoin transactions.

A transaction input only names the output it spends, so checking or producing
its signature needs the previous transaction. A Signer looks those up through
a TxFetcher, usually a *txfetcher.Fetcher, and caches nothing itself.

Only SIGHASH_ALL signatures over pay-to-pubkey-hash and pay-to-script-hash
outputs are produced. Verification runs the combined unlocking and locking
script through txscript, so any script the engine understands can be checked.
*/
package txsign
