// Package merkle builds the allocation Merkle tree for a registration round.
//
// Leaves and internal nodes are hashed with keccak256 under distinct one byte
// prefixes so an internal node can never be presented as a leaf:
//
//	leaf = keccak256(0x00 || uint256(index) || address(account) || uint256(amount))
//	node = keccak256(0x01 || min(a, b) || max(a, b))
//
// Children are ordered by raw byte value before hashing, so proofs are a plain
// bottom-to-top list of sibling hashes without direction bits. When a level has
// an odd number of nodes the last one is promoted to the next level unchanged.
//
// An on-chain verifier must reproduce exactly:
//
//	function verify(bytes32[] proof, bytes32 root, bytes32 leaf) returns (bool) {
//	    bytes32 h = leaf;
//	    for (uint256 i = 0; i < proof.length; i++) {
//	        h = h < proof[i]
//	            ? keccak256(abi.encodePacked(bytes1(0x01), h, proof[i]))
//	            : keccak256(abi.encodePacked(bytes1(0x01), proof[i], h));
//	    }
//	    return h == root;
//	}
package merkle
