package types

import (
	"fmt"
	"strconv"
)

// EntityID - непрозрачный 64-битный идентификатор сущности.
//
// Формат битов (от старших к младшим):
//
//	[ Generation (32) | Index (32) ]
//
// Index - номер слота в хранилище компонентов, начинается с 1.
// Generation растёт каждый раз, когда слот переиспользуется после
// полного удаления сущности, поэтому устаревшая ссылка не совпадёт
// с новой сущностью в том же слоте.
type EntityID uint64

// NilEntityID - отсутствие сущности. Хранилище никогда его не выдаёт.
const NilEntityID EntityID = 0

const (
	bitsIndex = 32
	shiftGen  = bitsIndex
	maskIndex = (1 << bitsIndex) - 1
	maskGen   = (1 << 32) - 1
)

// PackEntityID собирает EntityID из поколения и индекса слота.
func PackEntityID(gen uint32, index uint32) EntityID {
	return EntityID(uint64(gen)<<shiftGen | uint64(index))
}

// Index возвращает номер слота.
func (id EntityID) Index() uint32 {
	return uint32(id & maskIndex)
}

// Generation возвращает поколение слота.
func (id EntityID) Generation() uint32 {
	return uint32((id >> shiftGen) & maskGen)
}

func (id EntityID) IsNil() bool {
	return id == NilEntityID
}

// String - для логов и отладки.
func (id EntityID) String() string {
	if id.IsNil() {
		return "<nil>"
	}
	return fmt.Sprintf("#%d.%d", id.Index(), id.Generation())
}

// MarshalJSON пишет id строкой: JS-клиенты транспорта теряют точность на uint64.
func (id EntityID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(id), 10) + `"`), nil
}

// UnmarshalJSON принимает и строку, и число.
func (id *EntityID) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) > 1 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" || s == "null" {
		*id = NilEntityID
		return nil
	}
	return id.parse(s)
}

// MarshalText позволяет использовать EntityID ключом JSON-объекта.
func (id EntityID) MarshalText() ([]byte, error) {
	return []byte(strconv.FormatUint(uint64(id), 10)), nil
}

func (id *EntityID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*id = NilEntityID
		return nil
	}
	return id.parse(string(data))
}

func (id *EntityID) parse(s string) error {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid entity id %q: %w", s, err)
	}
	*id = EntityID(v)
	return nil
}
