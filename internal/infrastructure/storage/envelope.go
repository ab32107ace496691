package storage

import (
	"bytes"
	"compress/gzip"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/yuru-sha/roguelike-sub000/internal/errors"
)

const (
	MagicHeader     string = `RLSV` // 4 байта
	EnvelopeVersion uint32 = 1

	// DefaultPassphrase - если ключ в конфигурации не задан.
	DefaultPassphrase = "roguelike"
)

// Флаги заголовка.
const (
	FlagGzip      uint32 = 1 << 0
	FlagEncrypted uint32 = 1 << 1
)

// Параметры argon2id.
const (
	kdfTime    = 1
	kdfMemory  = 8 * 1024 // KiB
	kdfThreads = 2
)

// EnvelopeHeader - точное представление заголовка файла сохранения.
// binary.Write пишет его целиком: тут только массивы и числа.
type EnvelopeHeader struct {
	Magic      [4]byte  // 4 байта
	Version    uint32   // 4 байта
	Flags      uint32   // 4 байта
	Salt       [16]byte // соль argon2id
	Nonce      [12]byte // nonce chacha20poly1305
	PayloadLen uint64   // 8 байт
}

func (h *EnvelopeHeader) associatedData() []byte {
	b := make([]byte, 0, 12)
	b = append(b, h.Magic[:]...)
	b = binary.LittleEndian.AppendUint32(b, h.Version)
	return binary.LittleEndian.AppendUint32(b, h.Flags)
}

// Sealer упаковывает запись: JSON -> gzip -> chacha20poly1305.
type Sealer struct {
	passphrase []byte
}

func NewSealer(passphrase string) *Sealer {
	if passphrase == "" {
		passphrase = DefaultPassphrase
	}
	return &Sealer{passphrase: []byte(passphrase)}
}

func (s *Sealer) key(salt []byte) []byte {
	return argon2.IDKey(s.passphrase, salt, kdfTime, kdfMemory, kdfThreads, chacha20poly1305.KeySize)
}

// Seal кодирует запись в байты файла.
func (s *Sealer) Seal(rec *SaveRecord) ([]byte, error) {
	plain, err := json.Marshal(rec)
	if err != nil {
		return nil, errors.Wrap(err, "marshal record")
	}

	// 1. Сжатие
	var zbuf bytes.Buffer
	zw := gzip.NewWriter(&zbuf)
	if _, err := zw.Write(plain); err != nil {
		return nil, errors.Wrap(err, "gzip record")
	}
	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(err, "gzip record")
	}

	// 2. Шифрование
	header := EnvelopeHeader{Version: EnvelopeVersion, Flags: FlagGzip | FlagEncrypted}
	copy(header.Magic[:], MagicHeader)
	if _, err := rand.Read(header.Salt[:]); err != nil {
		return nil, errors.Wrap(err, "salt")
	}
	if _, err := rand.Read(header.Nonce[:]); err != nil {
		return nil, errors.Wrap(err, "nonce")
	}
	aead, err := chacha20poly1305.New(s.key(header.Salt[:]))
	if err != nil {
		return nil, errors.Wrap(err, "cipher")
	}
	// Магия, версия и флаги входят в associated data: их подмена ломает тег.
	sealed := aead.Seal(nil, header.Nonce[:], zbuf.Bytes(), header.associatedData())
	header.PayloadLen = uint64(len(sealed))

	// 3. Заголовок + тело
	var out bytes.Buffer
	if err := binary.Write(&out, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	out.Write(sealed)
	return out.Bytes(), nil
}

// Open раскрывает файл в сырую карту: её ещё предстоит мигрировать.
func (s *Sealer) Open(data []byte) (map[string]any, error) {
	r := bytes.NewReader(data)

	// 1. Читаем заголовок целиком
	var header EnvelopeHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, integrity(err, "failed to read header")
	}
	if string(header.Magic[:]) != MagicHeader {
		return nil, errors.Newf(errors.CodeSaveIntegrityFailure, "invalid magic")
	}
	if header.Version != EnvelopeVersion {
		return nil, errors.Newf(errors.CodeSaveIntegrityFailure, "unsupported envelope version: %d (expected %d)", header.Version, EnvelopeVersion)
	}
	if header.PayloadLen != uint64(r.Len()) {
		return nil, errors.Newf(errors.CodeSaveIntegrityFailure, "payload is %d bytes, header says %d", r.Len(), header.PayloadLen)
	}
	body := data[len(data)-r.Len():]

	// 2. Расшифровка
	if header.Flags&FlagEncrypted != 0 {
		aead, err := chacha20poly1305.New(s.key(header.Salt[:]))
		if err != nil {
			return nil, errors.Wrap(err, "cipher")
		}
		plain, err := aead.Open(nil, header.Nonce[:], body, header.associatedData())
		if err != nil {
			return nil, integrity(err, "decrypt payload")
		}
		body = plain
	}

	// 3. Распаковка
	if header.Flags&FlagGzip != 0 {
		zr, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, integrity(err, "gunzip payload")
		}
		plain, err := io.ReadAll(zr)
		if err != nil {
			return nil, integrity(err, "gunzip payload")
		}
		body = plain
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, integrity(err, "parse record")
	}
	return raw, nil
}

// DecodeRecord мигрирует сырую карту и разбирает её в SaveRecord.
func DecodeRecord(raw map[string]any) (*SaveRecord, string, error) {
	from, err := Migrate(raw)
	if err != nil {
		return nil, from, err
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, from, integrity(err, "re-encode record")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var rec SaveRecord
	if err := dec.Decode(&rec); err != nil {
		return nil, from, integrity(err, "decode record")
	}
	return &rec, from, nil
}

// Checksum - xxhash64 тела файла, hex.
func Checksum(data []byte) string {
	return strconv.FormatUint(xxhash.Sum64(data), 16)
}

// VerifyChecksum сверяет тело с содержимым файла .sum.
func VerifyChecksum(data, sum []byte) error {
	want := string(bytes.TrimSpace(sum))
	if got := Checksum(data); got != want {
		return errors.Newf(errors.CodeSaveIntegrityFailure, "checksum mismatch: got %s, want %s", got, want)
	}
	return nil
}

func integrity(err error, msg string) error {
	return errors.WrapWithCode(err, errors.CodeSaveIntegrityFailure, msg)
}
