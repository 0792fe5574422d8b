package entity

import (
	"fmt"
	"slices"

	"github.com/aretw0/espalier/pkg/domain"
)

// fieldWriters perform the typed assignment for Set. Each writer
// validates and converts the incoming value before touching the entity,
// so a type mismatch leaves the prior state unchanged.
var fieldWriters = map[string]func(*InfraConfig, any) error{
	FieldInstanceID: func(c *InfraConfig, v any) error {
		s, err := asString(v)
		if err != nil {
			return err
		}
		c.instanceID = s
		return nil
	},
	FieldRole: func(c *InfraConfig, v any) error {
		s, err := asString(v)
		if err != nil {
			return err
		}
		c.role = domain.Role(s)
		return nil
	},
	FieldStatus: func(c *InfraConfig, v any) error {
		s, err := asString(v)
		if err != nil {
			return err
		}
		c.status = domain.Status(s)
		return nil
	},
	FieldStatusUpdateTS: func(c *InfraConfig, v any) error {
		n, err := asInt64(v)
		if err != nil {
			return err
		}
		c.statusUpdateTS = n
		return nil
	},
	FieldGameType: func(c *InfraConfig, v any) error {
		s, err := asString(v)
		if err != nil {
			return err
		}
		c.gameType = domain.GameType(s)
		return nil
	},
	FieldNumPIDContainers: func(c *InfraConfig, v any) error {
		n, err := asInt(v)
		if err != nil {
			return err
		}
		c.numPIDContainers = n
		return nil
	},
	FieldNumMPCContainers: func(c *InfraConfig, v any) error {
		n, err := asInt(v)
		if err != nil {
			return err
		}
		c.numMPCContainers = n
		return nil
	},
	FieldNumFilesPerMPCContainer: func(c *InfraConfig, v any) error {
		n, err := asInt(v)
		if err != nil {
			return err
		}
		c.numFilesPerMPCContainer = n
		return nil
	},
	FieldStatusUpdates: func(c *InfraConfig, v any) error {
		updates, ok := v.([]domain.StatusUpdate)
		if !ok {
			return fmt.Errorf("expected []domain.StatusUpdate, got %T", v)
		}
		c.statusUpdates = slices.Clone(updates)
		return nil
	},
	FieldTier: func(c *InfraConfig, v any) error {
		s, err := asString(v)
		if err != nil {
			return err
		}
		c.tier = s
		return nil
	},
	FieldFeatures: func(c *InfraConfig, v any) error {
		fs, err := asFeatures(v)
		if err != nil {
			return err
		}
		c.features = fs
		return nil
	},
	FieldPCEConfig: func(c *InfraConfig, v any) error {
		if v == nil {
			c.pceConfig = nil
			return nil
		}
		cfg, ok := v.(*domain.PCEConfig)
		if !ok {
			return fmt.Errorf("expected *domain.PCEConfig, got %T", v)
		}
		c.pceConfig = cfg
		return nil
	},
	FieldStageFlow: func(c *InfraConfig, v any) error {
		s, err := asString(v)
		if err != nil {
			return err
		}
		c.stageFlow = s
		return nil
	},
	FieldRetryCounter: func(c *InfraConfig, v any) error {
		n, err := asInt(v)
		if err != nil {
			return err
		}
		c.retryCounter = n
		return nil
	},
	FieldCreationTS: func(c *InfraConfig, v any) error {
		n, err := asInt64(v)
		if err != nil {
			return err
		}
		c.creationTS = n
		return nil
	},
	FieldEndTS: func(c *InfraConfig, v any) error {
		n, err := asInt64(v)
		if err != nil {
			return err
		}
		c.endTS = n
		return nil
	},
	FieldConcurrency: func(c *InfraConfig, v any) error {
		n, err := asInt(v)
		if err != nil {
			return err
		}
		c.concurrency = n
		return nil
	},
}

func init() {
	// Every registered field needs a writer, or Set would nil-deref.
	for _, f := range fieldRegistry.Fields() {
		if _, ok := fieldWriters[f]; !ok {
			panic(fmt.Sprintf("entity: field %q has no writer", f))
		}
	}
}

func asString(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case domain.Role:
		return string(s), nil
	case domain.Status:
		return string(s), nil
	case domain.GameType:
		return string(s), nil
	}
	return "", fmt.Errorf("expected string, got %T", v)
}

func asInt(v any) (int, error) {
	n, err := asInt64(v)
	return int(n), err
}

func asInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		// JSON decoding yields float64; accept integral values only.
		if n != float64(int64(n)) {
			return 0, fmt.Errorf("expected integer, got %v", n)
		}
		return int64(n), nil
	}
	return 0, fmt.Errorf("expected integer, got %T", v)
}

func asFeatures(v any) (map[domain.Feature]struct{}, error) {
	set := make(map[domain.Feature]struct{})
	switch fs := v.(type) {
	case []domain.Feature:
		for _, f := range fs {
			set[f] = struct{}{}
		}
	case []string:
		for _, f := range fs {
			set[domain.Feature(f)] = struct{}{}
		}
	default:
		return nil, fmt.Errorf("expected feature list, got %T", v)
	}
	return set, nil
}
