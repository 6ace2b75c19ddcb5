package common

import (
	"math"

	"github.com/skyzh/tikv/errors"
)

/*
Group keys are encoded so that two keys are equal as byte strings exactly when the
key column values are equal. We use the MySQL/RocksDB-style memcomparable scheme
(big-endian, sign bit flipped for signed values) so the same bytes can also be
handed upstream for ordered storage.
https://github.com/facebook/mysql-5.6/wiki/MyRocks-record-format
*/

const SignBitMask uint64 = 1 << 63

func KeyEncodeInt64(buffer []byte, val int64) []byte {
	uVal := uint64(val) ^ SignBitMask
	return AppendUint64ToBufferBE(buffer, uVal)
}

func KeyEncodeFloat64(buffer []byte, val float64) []byte {
	uVal := math.Float64bits(val)
	if val >= 0 {
		uVal |= SignBitMask
	} else {
		uVal = ^uVal
	}
	return AppendUint64ToBufferBE(buffer, uVal)
}

func KeyEncodeString(buffer []byte, val string) []byte {
	buffer = AppendUint32ToBufferBE(buffer, uint32(len(val)))
	return append(buffer, val...)
}

func KeyEncodeDecimal(buffer []byte, val Decimal) ([]byte, error) {
	return val.Encode(buffer)
}

func KeyEncodeTimestamp(buffer []byte, val Timestamp) ([]byte, error) {
	enc, err := val.ToPackedUint()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	buffer = AppendUint64ToBufferBE(buffer, enc)
	return buffer, nil
}

func KeyEncodeDuration(buffer []byte, val int64) []byte {
	return KeyEncodeInt64(buffer, val)
}

// EncodeKeyElement appends the encoding of one key column value. A nil value
// encodes as a zero marker byte, any other value as a one marker byte followed by
// the value encoding, so null and non-null keys can never collide.
func EncodeKeyElement(value interface{}, colType ColumnType, buffer []byte) ([]byte, error) {
	if value == nil {
		return append(buffer, 0), nil
	}
	buffer = append(buffer, 1)
	switch colType.Type {
	case TypeBigInt:
		valInt64, ok := value.(int64)
		if !ok {
			return nil, errors.Errorf("expected %v to be int64", value)
		}
		buffer = KeyEncodeInt64(buffer, valInt64)
	case TypeDouble:
		valFloat64, ok := value.(float64)
		if !ok {
			return nil, errors.Errorf("expected %v to be float64", value)
		}
		buffer = KeyEncodeFloat64(buffer, valFloat64)
	case TypeDecimal:
		valDec, ok := value.(Decimal)
		if !ok {
			return nil, errors.Errorf("expected %v to be Decimal", value)
		}
		var err error
		buffer, err = KeyEncodeDecimal(buffer, valDec)
		if err != nil {
			return nil, errors.WithStack(err)
		}
	case TypeVarchar, TypeJSON:
		valString, ok := value.(string)
		if !ok {
			return nil, errors.Errorf("expected %v to be string", value)
		}
		buffer = KeyEncodeString(buffer, valString)
	case TypeTimestamp:
		valTS, ok := value.(Timestamp)
		if !ok {
			return nil, errors.Errorf("expected %v to be Timestamp", value)
		}
		var err error
		buffer, err = KeyEncodeTimestamp(buffer, valTS)
		if err != nil {
			return nil, errors.WithStack(err)
		}
	case TypeDuration:
		valDur, ok := value.(int64)
		if !ok {
			return nil, errors.Errorf("expected %v to be int64 duration", value)
		}
		buffer = KeyEncodeDuration(buffer, valDur)
	default:
		return nil, errors.NewUnknownColumnTypeError(int(colType.Type))
	}
	return buffer, nil
}
