package api

//go:generate oapi-codegen --config=cfg.yaml ../../api/openapi.yaml
