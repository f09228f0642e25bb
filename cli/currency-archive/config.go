package main

import (
	"context"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"

	"github.com/malusev998/currency-archive/planner"
	"github.com/malusev998/currency-archive/storage"
)

type (
	StorageConfig map[storage.Provider]interface{}
	Config        struct {
		ArchiveURL    string
		Timeout       time.Duration
		Currencies    []string
		Format        string
		Storage       storage.Provider
		StorageConfig StorageConfig
		MetricsFile   string
	}
)

func setDefaults() {
	viper.SetDefault("archive.url", planner.ArchiveURL)
	viper.SetDefault("archive.timeout", time.Duration(0))
	viper.SetDefault("currencies", planner.DefaultCurrencies)
	viper.SetDefault("output.format", "json")
	viper.SetDefault("audit.storage", string(storage.File))
	viper.SetDefault("audit.file", "./exchange_audit.log")
	viper.SetDefault("databases.mysql.table", storage.DefaultTableName)
	viper.SetDefault("databases.mongodb.collection", storage.DefaultTableName)
	viper.SetDefault("migrate", false)
	viper.SetDefault("metrics.file", "")
}

func getMysqlDSN(config map[string]string) string {
	mysqlDriverConfig := mysql.NewConfig()
	mysqlDriverConfig.User = config["user"]
	mysqlDriverConfig.Passwd = config["password"]
	mysqlDriverConfig.Addr = config["addr"]
	mysqlDriverConfig.Net = "tcp"
	mysqlDriverConfig.DBName = config["db"]
	mysqlDriverConfig.ParseTime = true

	return mysqlDriverConfig.FormatDSN()
}

// getStringMap reads every leaf on its own, nested maps from viper skip
// environment overrides such as CURRENCY_ARCHIVE_DATABASES_MYSQL_PASSWORD.
func getStringMap(prefix string, keys ...string) map[string]string {
	values := make(map[string]string, len(keys))

	for _, key := range keys {
		values[key] = viper.GetString(prefix + "." + key)
	}

	return values
}

func getConfig(ctx context.Context) (*Config, error) {
	setDefaults()

	mysqlConfig := getStringMap("databases.mysql", "user", "password", "addr", "db", "table")
	mongodbConfig := getStringMap("databases.mongodb", "uri", "database", "collection")

	provider, err := storage.ConvertToProviderFromString(viper.GetString("audit.storage"))

	if err != nil {
		return nil, fmt.Errorf("error while parsing audit.storage: %w", err)
	}

	timeout := viper.GetDuration("archive.timeout")

	if timeout < 0 {
		return nil, fmt.Errorf("archive.timeout must not be negative, got %s", timeout)
	}

	storageBaseConfig := storage.BaseConfig{
		Ctx:     ctx,
		Migrate: viper.GetBool("migrate"),
	}

	return &Config{
		ArchiveURL: viper.GetString("archive.url"),
		Timeout:    timeout,
		Currencies: viper.GetStringSlice("currencies"),
		Format:     viper.GetString("output.format"),
		Storage:    provider,
		StorageConfig: StorageConfig{
			storage.File: storage.FileConfig{
				BaseConfig: storageBaseConfig,
				Path:       viper.GetString("audit.file"),
			},
			storage.MySQL: storage.MySQLConfig{
				BaseConfig:       storageBaseConfig,
				ConnectionString: getMysqlDSN(mysqlConfig),
				TableName:        mysqlConfig["table"],
			},
			storage.MongoDB: storage.MongoDBConfig{
				BaseConfig:       storageBaseConfig,
				ConnectionString: mongodbConfig["uri"],
				Database:         mongodbConfig["database"],
				Collection:       mongodbConfig["collection"],
			},
		},
		MetricsFile: viper.GetString("metrics.file"),
	}, nil
}
