package gormrepo

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
	"gorm.io/gorm"
	"lukechampine.com/blake3"

	"starweave/internal/app/ports"
	"starweave/internal/domain/world"
)

var ErrChecksumMismatch = errors.New("snapshot checksum mismatch")

type WorldRepo struct {
	db *gorm.DB
}

func NewWorldRepo(db *gorm.DB) WorldRepo {
	return WorldRepo{db: db}
}

// encodeSnapshot compresses the world's JSON form and returns the blob with
// the checksum of the uncompressed bytes.
func encodeSnapshot(w world.GameWorld) (blob []byte, checksum string, err error) {
	raw, err := json.Marshal(w)
	if err != nil {
		return nil, "", fmt.Errorf("encode snapshot: %w", err)
	}
	sum := blake3.Sum256(raw)

	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return nil, "", fmt.Errorf("compress snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, "", fmt.Errorf("compress snapshot: %w", err)
	}
	return buf.Bytes(), hex.EncodeToString(sum[:]), nil
}

func decodeSnapshot(blob []byte, checksum string) (world.GameWorld, error) {
	raw, err := io.ReadAll(lz4.NewReader(bytes.NewReader(blob)))
	if err != nil {
		return world.GameWorld{}, fmt.Errorf("decompress snapshot: %w", err)
	}
	sum := blake3.Sum256(raw)
	if hex.EncodeToString(sum[:]) != checksum {
		return world.GameWorld{}, ErrChecksumMismatch
	}

	var w world.GameWorld
	if err := json.Unmarshal(raw, &w); err != nil {
		return world.GameWorld{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return w, nil
}

func (r WorldRepo) SaveSnapshot(ctx context.Context, w world.GameWorld) error {
	blob, checksum, err := encodeSnapshot(w)
	if err != nil {
		return err
	}
	row := WorldSnapshot{
		WorldID:  w.ID,
		Tick:     w.CurrentTick,
		Blob:     blob,
		Checksum: checksum,
	}
	return getDBFromCtx(ctx, r.db).Create(&row).Error
}

// LoadSnapshot returns the most recent snapshot for the world, verifying the
// stored checksum against the decompressed bytes before decoding.
func (r WorldRepo) LoadSnapshot(ctx context.Context, worldID string) (world.GameWorld, error) {
	var row WorldSnapshot
	err := getDBFromCtx(ctx, r.db).
		Where("world_id = ?", worldID).
		Order("tick DESC, id DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return world.GameWorld{}, ports.ErrNotFound
		}
		return world.GameWorld{}, err
	}
	return decodeSnapshot(row.Blob, row.Checksum)
}
