/*
Package blockchain implements the proof of work rules of bitcoin block headers.

Targets are stored in headers in a compact form, see CompactToBig. A header is
valid when its target is positive and at most the network's proof of work
limit, and its hash read as a little endian number does not exceed the target.
Difficulty retargeting is not implemented; CheckHeaderChain only checks that a
run of headers link together and that each carries valid proof of work.
*/
package blockchain
