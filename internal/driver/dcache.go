package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"phpdrift/internal/diag"
	"phpdrift/internal/phpver"
	"phpdrift/internal/rules"
	"phpdrift/internal/source"
)

// Current schema version - increment when CachePayload format changes
const diskCacheSchemaVersion uint16 = 1

// CacheKey идентифицирует результат проверки: SHA-256 от версии схемы,
// целевого диапазона, набора правил и содержимого файла.
type CacheKey [sha256.Size]byte

// DiskCache хранит находки проверенных файлов между запусками.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachePayload — сериализуемый слепок диагностик одного файла. Spans
// хранятся как смещения: FileID живёт только внутри одного прогона и при
// повторе привязывается заново.
type CachePayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16
	Diags  []CachedDiag
}

// CachedDiag повторяет diag.Diagnostic без FileID в span'ах.
type CachedDiag struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []CachedNote
}

// CachedNote повторяет diag.Note без FileID.
type CachedNote struct {
	Msg   string
	Start uint32
	End   uint32
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key CacheKey) string {
	hexKey := hex.EncodeToString(key[:])
	// Ключи лежат в подкаталоге "scans".
	return filepath.Join(c.dir, "scans", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key CacheKey, payload *CachePayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	// После успешного Rename файла под этим именем уже нет, Remove
	// срабатывает только на ошибочных путях.
	defer func() { _ = os.Remove(f.Name()) }()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key CacheKey, out *CachePayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(key)
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() { _ = f.Close() }()

	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим целиком
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// Record сохраняет содержимое bag'а под ключом. Диагностики с вложенным
// span берут только смещения, FileID отбрасывается.
func (c *DiskCache) Record(key CacheKey, bag *diag.Bag) error {
	if c == nil || bag == nil {
		return nil
	}
	return c.Put(key, bagToPayload(bag))
}

// Replay восстанавливает ранее сохранённые диагностики в bag, привязывая
// span'ы к fileID текущего прогона. Возвращает false при промахе; битая
// или несовместимая запись тоже считается промахом.
func (c *DiskCache) Replay(key CacheKey, fileID source.FileID, bag *diag.Bag) (bool, error) {
	if c == nil || bag == nil {
		return false, nil
	}
	var payload CachePayload
	ok, err := c.Get(key, &payload)
	if err != nil || !ok {
		return false, err
	}
	if payload.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	payloadInto(&payload, fileID, bag)
	return true, nil
}

// bagToPayload converts a diagnostics bag to its cached form.
func bagToPayload(bag *diag.Bag) *CachePayload {
	items := bag.Items()
	payload := &CachePayload{
		Schema: diskCacheSchemaVersion,
		Diags:  make([]CachedDiag, len(items)),
	}
	for i, d := range items {
		cd := CachedDiag{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		if len(d.Notes) > 0 {
			cd.Notes = make([]CachedNote, len(d.Notes))
			for j, n := range d.Notes {
				cd.Notes[j] = CachedNote{Msg: n.Msg, Start: n.Span.Start, End: n.Span.End}
			}
		}
		payload.Diags[i] = cd
	}
	return payload
}

// payloadInto converts a cached payload back to live diagnostics.
func payloadInto(payload *CachePayload, fileID source.FileID, bag *diag.Bag) {
	for _, cd := range payload.Diags {
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Primary:  source.Span{File: fileID, Start: cd.Start, End: cd.End},
		}
		if len(cd.Notes) > 0 {
			d.Notes = make([]diag.Note, len(cd.Notes))
			for j, n := range cd.Notes {
				d.Notes[j] = diag.Note{
					Span: source.Span{File: fileID, Start: n.Start, End: n.End},
					Msg:  n.Msg,
				}
			}
		}
		bag.Add(d)
	}
}

// newKeyMaker фиксирует конфигурационную часть ключа один раз на прогон;
// замыкание добавляет к ней хеш содержимого конкретного файла.
func newKeyMaker(target phpver.Range, sel []rules.Rule) func(*source.File) CacheKey {
	h := sha256.New()
	var schema [2]byte
	binary.LittleEndian.PutUint16(schema[:], diskCacheSchemaVersion)
	_, _ = h.Write(schema[:])
	_, _ = io.WriteString(h, target.String())
	for _, r := range sel {
		_, _ = io.WriteString(h, "\x00"+r.Name())
	}
	var cfg CacheKey
	copy(cfg[:], h.Sum(nil))

	return func(f *source.File) CacheKey {
		return combineKey(cfg, f.Hash)
	}
}

// combineKey: H(config || content).
func combineKey(cfg CacheKey, content [sha256.Size]byte) CacheKey {
	h := sha256.New()
	_, _ = h.Write(cfg[:])
	_, _ = h.Write(content[:])
	var out CacheKey
	copy(out[:], h.Sum(nil))
	return out
}
