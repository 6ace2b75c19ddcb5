package expr

import (
	"crypto/md5"  // nolint: gosec
	"crypto/rand"
	"crypto/sha1" // nolint: gosec
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"

	"github.com/skyzh/tikv/chunk"
	"github.com/skyzh/tikv/common"
	"github.com/skyzh/tikv/errors"
)

func md5Fn(args []*chunk.Column, rowCount int, result *chunk.Column) error {
	for i := 0; i < rowCount; i++ {
		if args[0].IsNull(i) {
			result.AppendNull()
			continue
		}
		sum := md5.Sum(args[0].GetBytes(i)) // nolint: gosec
		result.AppendString(hex.EncodeToString(sum[:]))
	}
	return nil
}

func sha1Fn(args []*chunk.Column, rowCount int, result *chunk.Column) error {
	for i := 0; i < rowCount; i++ {
		if args[0].IsNull(i) {
			result.AppendNull()
			continue
		}
		sum := sha1.Sum(args[0].GetBytes(i)) // nolint: gosec
		result.AppendString(hex.EncodeToString(sum[:]))
	}
	return nil
}

// SHA2(input, bits): bits selects the digest width; 0 means 256. An unsupported
// width yields null, matching MySQL.
func sha2Fn(args []*chunk.Column, rowCount int, result *chunk.Column) error {
	for i := 0; i < rowCount; i++ {
		if args[0].IsNull(i) || args[1].IsNull(i) {
			result.AppendNull()
			continue
		}
		input := args[0].GetBytes(i)
		var sum []byte
		switch args[1].GetInt64(i) {
		case 224:
			s := sha256.Sum224(input)
			sum = s[:]
		case 0, 256:
			s := sha256.Sum256(input)
			sum = s[:]
		case 384:
			s := sha512.Sum384(input)
			sum = s[:]
		case 512:
			s := sha512.Sum512(input)
			sum = s[:]
		default:
			result.AppendNull()
			continue
		}
		result.AppendString(hex.EncodeToString(sum))
	}
	return nil
}

const maxRandomBytes = 1024

func randomBytesFn(args []*chunk.Column, rowCount int, result *chunk.Column) error {
	for i := 0; i < rowCount; i++ {
		if args[0].IsNull(i) {
			result.AppendNull()
			continue
		}
		length := args[0].GetInt64(i)
		if length < 1 || length > maxRandomBytes {
			return errors.NewValueOutOfRangeError("length argument to RANDOM_BYTES must be between 1 and 1024")
		}
		buf := make([]byte, length)
		if _, err := rand.Read(buf); err != nil {
			return errors.WithStack(err)
		}
		result.AppendBytes(buf)
	}
	return nil
}

// UNCOMPRESSED_LENGTH reads the 4-byte little-endian length prefix COMPRESS()
// places before the deflated payload. Empty input yields 0.
func uncompressedLengthFn(args []*chunk.Column, rowCount int, result *chunk.Column) error {
	for i := 0; i < rowCount; i++ {
		if args[0].IsNull(i) {
			result.AppendNull()
			continue
		}
		payload := args[0].GetBytes(i)
		if len(payload) == 0 {
			result.AppendInt64(0)
			continue
		}
		if len(payload) <= 4 {
			result.AppendInt64(0)
			continue
		}
		length, _ := common.ReadUint32FromBufferLE(payload, 0)
		result.AppendInt64(int64(length))
	}
	return nil
}
