package snsd

import (
	"path"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stellarns/snsd/schema"
)

const sqliteName = "snsd.sqlite"

// Wdb records one audit row per built envelope.
type Wdb struct {
	Db *gorm.DB
}

func NewMysqlDb(dsn string) *Wdb {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:          logger.Default.LogMode(logger.Error),
		CreateBatchSize: 200,
	})
	if err != nil {
		panic(err)
	}
	log.Info("connect mysql db success")
	return &Wdb{Db: db}
}

func NewSqliteDb(dbDir string) *Wdb {
	db, err := gorm.Open(sqlite.Open(path.Join(dbDir, sqliteName)), &gorm.Config{
		Logger:          logger.Default.LogMode(logger.Error),
		CreateBatchSize: 200,
	})
	if err != nil {
		panic(err)
	}
	log.Info("connect sqlite db success")
	return &Wdb{Db: db}
}

func (w *Wdb) Migrate() error {
	return w.Db.AutoMigrate(&schema.EnvelopeOrder{})
}

func (w *Wdb) InsertOrder(order schema.EnvelopeOrder) error {
	return w.Db.Create(&order).Error
}

func (w *Wdb) GetOrdersByAccount(account string, page, size int) ([]schema.EnvelopeOrder, error) {
	if size <= 0 {
		size = 20
	}
	orders := make([]schema.EnvelopeOrder, 0, size)
	err := w.Db.Where("requester = ?", account).
		Order("id DESC").
		Offset(page * size).
		Limit(size).
		Find(&orders).Error
	return orders, err
}

func (w *Wdb) CountOrders() (int64, error) {
	var total int64
	err := w.Db.Model(&schema.EnvelopeOrder{}).Count(&total).Error
	return total, err
}

func (w *Wdb) Close() {
	sql, err := w.Db.DB()
	if err == nil {
		sql.Close()
	}
}
