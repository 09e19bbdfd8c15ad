package server

import (
	"fmt"
	"log"
	"time"

	"padmon/assessment"
	"padmon/boundary"
	"padmon/detector"
	"padmon/internal"
	"padmon/internal/config"
	"padmon/osm"
	"padmon/telegram"
	"padmon/validator"
)

type System struct {
	conf    *config.Config
	logger  *internal.Logger
	server  *Server
	service *AnalysisService
	bot     *telegram.TgBot
}

// NewSystem wires the whole service from config.yml: assessment tables,
// detection sources, optional integrations, storage and alerting.
func NewSystem() (*System, error) {
	conf, err := config.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	location, err := time.LoadLocation(conf.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("loading time zone %s: %w", conf.TimeZone, err)
	}
	logger := internal.NewLogger(location)
	logger.SetDebugMode(conf.IsDebug)

	tables, err := assessment.Load(conf.Assessment.File)
	if err != nil {
		return nil, fmt.Errorf("loading assessment tables: %w", err)
	}

	service := NewAnalysisService(tables, logger)
	service.RegisterSource(detector.ModeSimulated, detector.NewSimulated(tables))
	if conf.Imagery.Enabled {
		timeout := time.Duration(conf.Imagery.TimeoutSec) * time.Second
		service.RegisterSource(detector.ModeLive, detector.NewLive(conf.Imagery.Url, conf.Imagery.ApiKey, timeout))
		logger.Debug("live imagery source enabled")
	}
	if conf.Validator.Enabled {
		timeout := time.Duration(conf.Validator.TimeoutSec) * time.Second
		service.SetVerifier(validator.NewClient(conf.Validator.Url, timeout))
	}
	if conf.Overpass.Enabled {
		timeout := time.Duration(conf.Overpass.TimeoutSec) * time.Second
		service.SetBridge(osm.NewBridge(conf.Overpass.Url, timeout))
	}

	system := &System{
		conf:    conf,
		logger:  logger,
		service: service,
	}

	mongo, err := internal.NewMongoClient(conf)
	if err != nil {
		return nil, fmt.Errorf("mongodb client: %w", err)
	}
	if mongo != nil {
		logger.SetDatabase(mongo)
		service.SetDatabase(mongo)
	}

	if conf.Telegram.Enabled {
		bot, err := telegram.NewBot(conf.Telegram.ApiKey)
		if err != nil {
			logger.Error("telegram bot init", err)
		} else {
			if mongo != nil {
				bot.SetDatabase(mongo)
			}
			service.AddListener(bot)
			system.bot = bot
		}
	}

	// boundary data is optional reference material for the dashboard
	boundaries := boundary.NewManager(conf.Boundary.GeoJSONFile)
	system.server = NewServer(conf, service, logger)
	system.server.SetBoundaries(boundaries)
	service.AddListener(system.server)

	return system, nil
}

func (s *System) Start() {
	if s.bot != nil {
		s.bot.Start()
	}
	go func() {
		err := s.server.Start()
		if err != nil {
			log.Println("api server stopped;", err)
		}
	}()
	s.logger.FeatureEvent("system", "", fmt.Sprintf("listening on %s:%s", s.conf.Listen.BindIP, s.conf.Listen.Port))
	select {}
}
