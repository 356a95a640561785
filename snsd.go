package snsd

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"

	"github.com/stellarns/snsd/cache"
	"github.com/stellarns/snsd/common"
	"github.com/stellarns/snsd/config"
	"github.com/stellarns/snsd/horizon"
	"github.com/stellarns/snsd/txn"
)

const lookupCacheTTL = 10 * time.Second

// SNS is the naming service: it resolves domain state from the ledger and
// assembles the transaction envelopes that move domains through their
// lifecycle.
type SNS struct {
	engine    *gin.Engine
	cfg       config.Config
	cli       *horizon.Client
	resolver  *Resolver
	contract  *Contract
	signer    *txn.Keypair
	store     *Store
	wdb       *Wdb
	events    *KWriter
	lookupC   *cache.Cache
	scheduler *gocron.Scheduler
}

func New(
	cfg config.Config,
	boltDirPath, mySqlDsn, sqliteDir string, useSqlite bool,
	useS3 bool, s3AccKey, s3SecretKey, s3BucketPrefix, s3Region, s3Endpoint string,
	kafkaUri string,
) *SNS {
	signer, err := txn.FromSecret(cfg.SignerSecret)
	if err != nil {
		panic(err)
	}

	store := &Store{}
	if useS3 {
		store, err = NewS3Store(s3AccKey, s3SecretKey, s3Region, s3BucketPrefix, s3Endpoint)
	} else {
		store, err = NewBoltStore(boltDirPath)
	}
	if err != nil {
		panic(err)
	}

	wdb := &Wdb{}
	if useSqlite {
		wdb = NewSqliteDb(sqliteDir)
	} else {
		wdb = NewMysqlDb(mySqlDsn)
	}
	if err = wdb.Migrate(); err != nil {
		panic(err)
	}

	var events *KWriter
	if kafkaUri != "" {
		events, err = NewKWriter(EnvelopeTopic, kafkaUri)
		if err != nil {
			panic(err)
		}
	}

	lookupC, err := cache.NewLocalCache(lookupCacheTTL)
	if err != nil {
		panic(err)
	}

	cli := horizon.New(cfg.HorizonURL)
	return &SNS{
		engine:    gin.Default(),
		cfg:       cfg,
		cli:       cli,
		resolver:  NewResolver(cli, cfg.RegistrarAccount),
		contract:  NewContract(cli, cfg),
		signer:    signer,
		store:     store,
		wdb:       wdb,
		events:    events,
		lookupC:   lookupC,
		scheduler: gocron.NewScheduler(time.UTC),
	}
}

func (s *SNS) Run(port string) {
	common.NewMetricServer()
	go s.runAPI(port)
	s.runJobs()
}

func (s *SNS) Close() {
	s.scheduler.Stop()
	if s.events != nil {
		s.events.Close()
	}
	s.wdb.Close()
	if err := s.store.Close(); err != nil {
		log.Warn("close store", "err", err)
	}
}
