package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	currency "github.com/malusev998/currency-archive"
)

type (
	Provider   string
	BaseConfig struct {
		Ctx     context.Context
		Migrate bool
	}
	FileConfig struct {
		BaseConfig
		Path string
	}
	MySQLConfig struct {
		BaseConfig
		ConnectionString string
		TableName        string
	}
	MongoDBConfig struct {
		BaseConfig
		ConnectionString string
		Database         string
		Collection       string
	}
)

const (
	File    Provider = "file"
	MySQL   Provider = "mysql"
	MongoDB Provider = "mongodb"
	None    Provider = "none"
)

var (
	ErrStorageNotFound = errors.New("storage is not found")
)

func ConvertToProviderFromString(str string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "file":
		return File, nil
	case "mysql":
		return MySQL, nil
	case "mongodb", "mongo":
		return MongoDB, nil
	case "none", "":
		return None, nil
	}

	return "", fmt.Errorf("value %s is not valid Provider", str)
}

// NewStorage returns a nil Storage for the None provider.
func NewStorage(provider Provider, config interface{}) (currency.Storage, error) {
	var (
		st  currency.Storage
		err error
	)

	switch provider {
	case None:
		return nil, nil
	case File:
		c, ok := config.(FileConfig)
		if !ok {
			return nil, fmt.Errorf("%w: invalid config for %s", ErrStorageNotFound, provider)
		}

		st, err = NewFileStorage(c)
	case MySQL:
		c, ok := config.(MySQLConfig)
		if !ok {
			return nil, fmt.Errorf("%w: invalid config for %s", ErrStorageNotFound, provider)
		}

		st, err = NewMySQLStorage(c)
	case MongoDB:
		c, ok := config.(MongoDBConfig)
		if !ok {
			return nil, fmt.Errorf("%w: invalid config for %s", ErrStorageNotFound, provider)
		}

		st, err = NewMongoStorage(c)
	default:
		return nil, ErrStorageNotFound
	}

	if err != nil {
		return nil, err
	}

	return st, nil
}
