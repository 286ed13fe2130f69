// Package importer discovers importable tables in a data directory.
//
// It walks the data root, keeps spreadsheet documents whose file name matches the
// configured file pattern, lists their sheets and turns every sheet matching the
// sheet pattern into a table-import descriptor. Sheets of one file that derive the
// same table name are merged into a single descriptor.
//
// # Naming
//
// For a file at cfg/Item.xlsx with sheets Weapon and Armor the default options
// produce two tables in namespace "cfg":
//
//	TbItemWeapon  value type cfg.ItemWeapon  inputs [Weapon@cfg/Item.xlsx]
//	TbItemArmor   value type cfg.ItemArmor   inputs [Armor@cfg/Item.xlsx]
//
// A sheet named "Monster|Boss" uses the text after the bar as its group name, so
// several sheets can feed the same table.
//
// # Components
//
//   - Resolver: the discovery and grouping algorithm.
//   - DirWalker: recursive file listing with the ignore rule for temp and hidden files.
//   - FileSheetReader: sheet listing for xlsx, xlsm, xls and csv documents.
//   - Service / Handler / Feature: HTTP exposure (GET /tables).
package importer
