// Package inspection loads field metadata documents and serves them as a
// model.Inspector. A document maps dotted type paths to the ordered
// attribute sets of their fields:
//
//	paths:
//	  person:
//	    - {name: name, type: string, required: true}
//	    - {name: address, type: address}
//	  person.address:
//	    - {name: city, type: string}
//
// Documents may be JSON or YAML. Loader implementations live under
// internal/inspection/loader.
package inspection
