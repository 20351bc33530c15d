// Package services implements the driving ports: the ingestion pipeline,
// similarity retrieval and answer assembly. Services depend only on domain
// types and driven ports, never on concrete adapters.
package services
