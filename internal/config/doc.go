// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

// Package config loads RideWise configuration from layered sources.
//
// Precedence, lowest to highest:
//
//  1. built-in defaults (defaultConfig)
//  2. a YAML file: $CONFIG_PATH, ./config.yaml, /etc/ridewise/config.yaml
//  3. environment variables, mapped explicitly in envTransformFunc
//
// Before any layer is read, Load imports .env and .env.local into the process
// environment with godotenv so a local GEMINI_API_KEY is picked up without
// exporting it. Real environment variables always win over dotenv values.
//
// Example config.yaml:
//
//	server:
//	  port: 5000
//	models:
//	  dir: saved_models
//	store:
//	  backend: badger
//	  path: /var/lib/ridewise
//	chat:
//	  model: gemini-1.5-flash
package config
