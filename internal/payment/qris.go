// Package payment turns a merchant's static QRIS into a dynamic one carrying
// the transaction amount.
package payment

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidPayload  = errors.New("invalid QRIS payload")
	ErrInvalidChecksum = errors.New("QRIS checksum mismatch")
	ErrInvalidAmount   = errors.New("invalid QRIS amount")
)

const (
	tagPointOfInitiation = "01"
	tagAmount            = "54"
	tagTipIndicator      = "55"
	tagFeeFixed          = "56"
	tagFeePercent        = "57"
	tagMerchantName      = "59"
	tagMerchantCity      = "60"
	tagCRC               = "63"

	initiationStatic  = "11"
	initiationDynamic = "12"

	maxAmountDigits = 13
)

type FeeType string

const (
	FeeNone    FeeType = ""
	FeeFixed   FeeType = "fixed"
	FeePercent FeeType = "percent"
)

// Fee is a convenience fee the payer sees on top of the amount
type Fee struct {
	Type  FeeType
	Value float64
}

// Merchant is the identity read back from a payload
type Merchant struct {
	Name string
	City string
}

// CRC16CCITT computes the CRC-16/CCITT-FALSE checksum QRIS uses for tag 63
func CRC16CCITT(data string) uint16 {
	crc := uint16(0xFFFF)
	for i := 0; i < len(data); i++ {
		crc ^= uint16(data[i]) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

func checksum(body string) string {
	return fmt.Sprintf("%04X", CRC16CCITT(body))
}

// splitChecksum validates the trailing CRC field and returns the payload without it
func splitChecksum(payload string) (string, error) {
	payload = strings.TrimSpace(payload)
	if len(payload) < 8 {
		return "", fmt.Errorf("%w: too short", ErrInvalidPayload)
	}
	crcField := payload[len(payload)-8:]
	if !strings.HasPrefix(crcField, tagCRC+"04") {
		return "", fmt.Errorf("%w: missing checksum field", ErrInvalidPayload)
	}
	signed := payload[:len(payload)-4]
	if !strings.EqualFold(checksum(signed), crcField[4:]) {
		return "", ErrInvalidChecksum
	}
	return payload[:len(payload)-8], nil
}

// Validate checks the checksum and the TLV structure of a payload
func Validate(payload string) error {
	body, err := splitChecksum(payload)
	if err != nil {
		return err
	}
	_, err = ParseTLV(body)
	return err
}

// ReadMerchant returns the merchant name and city of a valid payload
func ReadMerchant(payload string) (Merchant, error) {
	body, err := splitChecksum(payload)
	if err != nil {
		return Merchant{}, err
	}
	fields, err := ParseTLV(body)
	if err != nil {
		return Merchant{}, err
	}
	name, _ := lookup(fields, tagMerchantName)
	city, _ := lookup(fields, tagMerchantCity)
	return Merchant{Name: name, City: city}, nil
}

// ToDynamic rewrites a static QRIS so that it requests exactly amount rupiah
func ToDynamic(static string, amount int64, fee Fee) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	amountStr := strconv.FormatInt(amount, 10)
	if len(amountStr) > maxAmountDigits {
		return "", fmt.Errorf("%w: %d has too many digits", ErrInvalidAmount, amount)
	}

	body, err := splitChecksum(static)
	if err != nil {
		return "", err
	}
	fields, err := ParseTLV(body)
	if err != nil {
		return "", err
	}
	if v, ok := lookup(fields, tagPointOfInitiation); !ok || (v != initiationStatic && v != initiationDynamic) {
		return "", fmt.Errorf("%w: unknown point of initiation", ErrInvalidPayload)
	}

	fields = removeFields(fields, tagAmount, tagTipIndicator, tagFeeFixed, tagFeePercent)
	fields = setField(fields, tagPointOfInitiation, initiationDynamic)
	fields = setField(fields, tagAmount, amountStr)

	switch fee.Type {
	case FeeNone:
	case FeeFixed:
		if fee.Value > 0 {
			fields = setField(fields, tagTipIndicator, "02")
			fields = setField(fields, tagFeeFixed, strconv.FormatInt(int64(fee.Value), 10))
		}
	case FeePercent:
		if fee.Value > 0 {
			fields = setField(fields, tagTipIndicator, "03")
			fields = setField(fields, tagFeePercent, strconv.FormatFloat(fee.Value, 'f', -1, 64))
		}
	default:
		return "", fmt.Errorf("%w: unknown fee type %q", ErrInvalidPayload, fee.Type)
	}

	encoded, err := EncodeTLV(fields)
	if err != nil {
		return "", err
	}
	signed := encoded + tagCRC + "04"
	return signed + checksum(signed), nil
}
