package message

import "github.com/quic-go/quic-go/quicvarint"

// numberLen reports the varint encoding length of num.
func numberLen(num uint64) int {
	return quicvarint.Len(num)
}

// bytesLen reports the encoded length of b including its length prefix.
func bytesLen(b []byte) int {
	return numberLen(uint64(len(b))) + len(b)
}

// stringLen reports the encoded length of s including its length prefix.
func stringLen(s string) int {
	return bytesLen([]byte(s))
}

// stringArrayLen reports the encoded length of arr: a count prefix followed
// by each element's own length-prefixed encoding.
func stringArrayLen(arr []string) int {
	if arr == nil {
		return 0
	}

	total := numberLen(uint64(len(arr)))
	for _, s := range arr {
		total += stringLen(s)
	}
	return total
}

// parametersLen reports the encoded length of p: a count prefix followed by
// each key/value pair.
func parametersLen(p Parameters) int {
	if p == nil {
		return 0
	}

	total := numberLen(uint64(len(p)))
	for key, value := range p {
		total += numberLen(key) + bytesLen(value)
	}
	return total
}
