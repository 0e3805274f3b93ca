package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/patrickprogramme/srtscribe/internal/fsutil"
)

// orchestrateConfigUpgrade : sauvegarde, migration, écriture
func orchestrateConfigUpgrade(cfg *Config, fromVersion int) error {
	if cfg == nil {
		return goerr.New("config nil lors de la migration")
	}
	if cfg.configFilePath == "" {
		return goerr.New("chemin du fichier de configuration inconnu : impossible de faire une sauvegarde")
	}

	// 1) backup (contenu gardé en mémoire pour une éventuelle restauration)
	original, backupPath, err := backupConfig(cfg.configFilePath)
	if err != nil {
		return goerr.Wrap(err, "échec de la sauvegarde du fichier de configuration avant migration")
	}

	// 2) appliquer migrations successives
	if err := migrateConfig(cfg, fromVersion); err != nil {
		return goerr.Wrap(err, "échec lors de la migration de la configuration", goerr.V("from", fromVersion))
	}

	cfg.normalizeConfig()
	cfg.ConfigVersion = CurrentConfigVersion

	// 3) sérialiser dans le format d'origine (yaml ou toml)
	b, err := encode(cfg.configFilePath, cfg)
	if err != nil {
		return goerr.Wrap(err, "échec d'encodage de la configuration migrée")
	}

	// 4) écrire atomiquement, restaurer l'original en cas d'échec
	if err := fsutil.WriteFileAtomic(cfg.configFilePath, b, 0o644); err != nil {
		_ = fsutil.WriteFileAtomic(cfg.configFilePath, original, 0o644)
		return goerr.Wrap(err, "échec d'écriture du fichier de configuration migré", goerr.V("path", cfg.configFilePath))
	}

	slog.Info("configuration mise à jour",
		slog.Int("from", fromVersion),
		slog.Int("to", CurrentConfigVersion),
		slog.String("backup", backupPath),
	)
	return nil
}

// backupConfig copie path vers path.bak.<horodatage> et retourne le contenu lu.
func backupConfig(path string) (data []byte, backup string, err error) {
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, "", goerr.Wrap(err, "lecture du fichier pour sauvegarde impossible", goerr.V("path", path))
	}
	backup = path + ".bak." + time.Now().Format("20060102T150405")
	if err := fsutil.WriteFileAtomic(backup, data, 0o644); err != nil {
		return nil, "", goerr.Wrap(err, "écriture de la sauvegarde impossible", goerr.V("backup", backup))
	}
	return data, backup, nil
}

// migrateConfig : appliquer les transformations nécessaires entre versions
func migrateConfig(cfg *Config, from int) error {
	if cfg == nil {
		return goerr.New("pas de fichier config fourni")
	}
	for v := from; v < CurrentConfigVersion; v++ {
		switch v {
		case 0, 1:
			// 0/1 -> 2 : "preqs" devient "prerequisites", "file_in" devient "zipped_sub_file"
			if len(cfg.LegacyPreqs) > 0 {
				cfg.Prerequisites = append(cfg.Prerequisites, cfg.LegacyPreqs...)
				cfg.LegacyPreqs = nil
			}
			if cfg.LegacyFileIn != "" {
				if cfg.ZippedSubFile == "" {
					cfg.ZippedSubFile = cfg.LegacyFileIn
				}
				cfg.LegacyFileIn = ""
			}
		default:
			// pas de changement par défaut
		}
	}
	return nil
}
