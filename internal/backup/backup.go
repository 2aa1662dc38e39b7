// Package backup snapshots every table into a JSON file on disk and can
// restore one wholesale. Restore runs inside a single transaction so a
// half-applied snapshot can never be observed.
package backup

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tokopos/internal/models"
)

// Snapshot is the on-disk backup format.
type Snapshot struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`

	Users          []models.User          `json:"users"`
	Products       []models.Product       `json:"products"`
	Categories     []models.Category      `json:"categories"`
	Customers      []models.Customer      `json:"customers"`
	Sales          []models.Sale          `json:"sales"`
	SaleItems      []models.SaleItem      `json:"sale_items"`
	Wholesalers    []models.Wholesaler    `json:"wholesalers"`
	Purchases      []models.Purchase      `json:"purchases"`
	PurchaseItems  []models.PurchaseItem  `json:"purchase_items"`
	StockMovements []models.StockMovement `json:"stock_movements"`
	AuditLogs      []models.AuditLog      `json:"audit_logs"`
	Settings       []models.StoreSettings `json:"settings"`
	Counters       []models.Counter       `json:"counters"`
}

const snapshotVersion = 1

type Service struct {
	db  *gorm.DB
	dir string
}

func New(db *gorm.DB, dir string) *Service { return &Service{db: db, dir: dir} }

// Create dumps the database into a new snapshot file and records it in the
// backup history.
func (s *Service) Create(ctx context.Context, note, createdBy string) (*models.Backup, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, pkgerrors.Wrap(err, "create backup dir")
	}

	snap, err := s.collect(ctx)
	if err != nil {
		return nil, err
	}

	id := "backup-" + uuid.NewString()
	path := filepath.Join(s.dir, id+".json")

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, pkgerrors.Wrap(err, "encode snapshot")
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, pkgerrors.Wrap(err, "write snapshot")
	}

	b := &models.Backup{
		ID:        id,
		Timestamp: snap.CreatedAt,
		SizeBytes: int64(len(data)),
		Note:      note,
		Path:      path,
		CreatedBy: createdBy,
	}
	if err := s.db.WithContext(ctx).Create(b).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "record backup")
	}
	log.WithFields(log.Fields{"backup": id, "bytes": b.SizeBytes}).Info("backup created")
	return b, nil
}

func (s *Service) collect(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{Version: snapshotVersion, CreatedAt: time.Now()}
	db := s.db.WithContext(ctx)

	for _, dst := range []interface{}{
		&snap.Users, &snap.Products, &snap.Categories, &snap.Customers,
		&snap.Sales, &snap.SaleItems, &snap.Wholesalers, &snap.Purchases,
		&snap.PurchaseItems, &snap.StockMovements, &snap.AuditLogs,
		&snap.Settings, &snap.Counters,
	} {
		if err := db.Find(dst).Error; err != nil {
			return nil, pkgerrors.Wrap(err, "collect snapshot")
		}
	}
	return snap, nil
}

// History lists recorded backups, newest first.
func (s *Service) History(ctx context.Context) ([]models.Backup, error) {
	var list []models.Backup
	err := s.db.WithContext(ctx).Order("timestamp desc").Find(&list).Error
	return list, pkgerrors.Wrap(err, "list backups")
}

// Restore replaces the database contents with a recorded snapshot.
func (s *Service) Restore(ctx context.Context, backupID string) error {
	var b models.Backup
	if err := s.db.WithContext(ctx).First(&b, "id = ?", backupID).Error; err != nil {
		return pkgerrors.Wrap(err, "load backup record")
	}
	f, err := os.Open(b.Path)
	if err != nil {
		return pkgerrors.Wrap(err, "open snapshot file")
	}
	defer f.Close()
	return s.RestoreFrom(ctx, f)
}

// RestoreFrom applies a snapshot read from r (a recorded file or an
// uploaded one).
func (s *Service) RestoreFrom(ctx context.Context, r io.Reader) error {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return pkgerrors.Wrap(err, "decode snapshot")
	}
	if snap.Version != snapshotVersion {
		return pkgerrors.Errorf("unsupported snapshot version %d", snap.Version)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wipe := []interface{}{
			&models.SaleItem{}, &models.Sale{}, &models.PurchaseItem{},
			&models.Purchase{}, &models.StockMovement{}, &models.AuditLog{},
			&models.Product{}, &models.Category{}, &models.Customer{},
			&models.Wholesaler{}, &models.User{}, &models.StoreSettings{},
			&models.Counter{},
		}
		for _, m := range wipe {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return err
			}
		}

		inserts := []interface{}{
			snap.Users, snap.Products, snap.Categories, snap.Customers,
			snap.Wholesalers, snap.Sales, snap.SaleItems, snap.Purchases,
			snap.PurchaseItems, snap.StockMovements, snap.AuditLogs,
			snap.Settings, snap.Counters,
		}
		for _, rows := range inserts {
			if err := createAll(tx, rows); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return pkgerrors.Wrap(err, "restore snapshot")
	}
	log.WithField("created_at", snap.CreatedAt).Info("snapshot restored")
	return nil
}

// createAll inserts a slice of rows, skipping empty slices (gorm errors on
// an empty batch insert).
func createAll(tx *gorm.DB, rows interface{}) error {
	v := reflect.ValueOf(rows)
	if v.Kind() == reflect.Slice && v.Len() == 0 {
		return nil
	}
	return tx.Create(rows).Error
}

// Delete removes a backup record and its file.
func (s *Service) Delete(ctx context.Context, backupID string) error {
	var b models.Backup
	if err := s.db.WithContext(ctx).First(&b, "id = ?", backupID).Error; err != nil {
		return pkgerrors.Wrap(err, "load backup record")
	}
	if err := os.Remove(b.Path); err != nil && !os.IsNotExist(err) {
		return pkgerrors.Wrap(err, "remove snapshot file")
	}
	return pkgerrors.Wrap(s.db.WithContext(ctx).Delete(&b).Error, "delete backup record")
}
