// Package connectors provides implementations of the Connector interface
// for document sources. Each connector knows how to fetch documents from
// a specific source type; today only the Notion connector exists.
package connectors
