// Package config provides configuration parsing for vbind projects.
//
// The configuration is stored in vbind.json, or vbind.yaml, next to the
// templates. Every field is optional; command line flags override file
// values.
//
// # Configuration File Structure
//
//	{
//	  "compiler": {
//	    "stripDirectives": false,
//	    "missingKey": "error",
//	    "selector": "#app"
//	  },
//	  "render": {
//	    "pretty": false,
//	    "indent": "  "
//	  },
//	  "serve": {
//	    "host": "localhost",
//	    "port": 4000,
//	    "watch": true,
//	    "pollInterval": "500ms"
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "vbind"
//	  },
//	  "tracing": {
//	    "enabled": false,
//	    "tracerName": "vbind"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Address:", cfg.ServeAddress())
package config
