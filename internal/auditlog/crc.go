package auditlog

import "hash/crc32"

func crc32Sum(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

func crc32Valid(data []byte, sum uint32) bool {
	return crc32Sum(data) == sum
}
