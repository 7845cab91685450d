package render

// Glyphs for the twelve pitch classes, indexed like note.Names.
var noteGlyphs = [12]string{
	`   ******
  **////**
 **    //
/**
/**
//**    **
 //******
  //////
`,
	`   ******
  **////**   **    **
 **    //  ************
/**       ///**////**/
/**         /**   /**
//**    ** ************
 //****** ///**////**/
  //////    //    //
`,
	` *******
/**////**
/**    /**
/**    /**
/**    /**
/**    **
/*******
///////
`,
	` *******
/**////**    **    **
/**    /** ************
/**    /**///**////**/
/**    /**  /**   /**
/**    **  ************
/*******  ///**////**/
///////     //    //
`,
	` ********
/**/////
/**
/*******
/**////
/**
/********
////////
`,
	` ********
/**/////
/**
/*******
/**////
/**
/**
//
`,
	` ********
/**/////    **    **
/**       ************
/******* ///**////**/
/**////    /**   /**
/**       ************
/**      ///**////**/
//         //    //
`,
	`   ********
  **//////**
 **      //
/**
/**    *****
//**  ////**
 //********
  ////////
`,
	`   ********
  **//////**   **    **
 **      //  ************
/**         ///**////**/
/**    *****  /**   /**
//**  ////** ************
 //******** ///**////**/
  ////////    //    //
`,
	`     **
    ****
   **//**
  **  //**
 **********
/**//////**
/**     /**
//      //
`,
	`     **
    ****      **    **
   **//**   ************
  **  //** ///**////**/
 **********  /**   /**
/**//////** ************
/**     /**///**////**/
//      //   //    //
`,
	` ******
/*////**
/*   /**
/******
/*//// **
/*    /**
/*******
///////
`,
}

const flatGlyph = `     **
   **/ **
 **   // **
//      //
`

const sharpGlyph = `/**   /**
//** /**
 //****
  //**
`

const banner = ` ********** **     ** ****     ** ******** *******
/////**/// /**    /**/**/**   /**/**///// /**////**
    /**    /**    /**/**//**  /**/**      /**   /**
    /**    /**    /**/** //** /**/******* /*******
    /**    /**    /**/**  //**/**/**////  /**///**
    /**    /**    /**/**   //****/**      /**  //**
    /**    //******* /**    //***/********/**   //**
    //      ///////  //      /// //////// //     //
`
